package domain

// Default rule order for the classifier cascade.
// The keyword scorer always runs last and is not listed.
const (
	RuleQRBank       = "qr_bank"
	RuleURL          = "url"
	RulePhone        = "phone"
	RuleEventPattern = "event_pattern"
	RuleAddress      = "address"
	RuleAnnotation   = "annotation"
)

// DefaultRules returns the cascade order used when none is configured.
func DefaultRules() []string {
	return []string{
		RuleQRBank,
		RuleURL,
		RulePhone,
		RuleEventPattern,
		RuleAddress,
		RuleAnnotation,
	}
}

// KeywordWeights maps a category to lower-case keywords and their weights.
type KeywordWeights map[Category]map[string]float64

// Clone returns a deep copy.
func (w KeywordWeights) Clone() KeywordWeights {
	out := make(KeywordWeights, len(w))
	for c, kws := range w {
		m := make(map[string]float64, len(kws))
		for k, v := range kws {
			m[k] = v
		}
		out[c] = m
	}
	return out
}

// ClassifierSettings holds classification behaviour configuration.
type ClassifierSettings struct {
	// Rules is the ordered cascade of rule names.
	Rules []string

	// MinScore is the keyword score a category needs to win.
	MinScore float64

	// NoteMinLength is the cleaned length above which text becomes a Note.
	NoteMinLength int

	// KeywordsFile is an optional TOML file merged over the built-in weights.
	KeywordsFile string
}

// WatchSettings holds screenshot watcher configuration.
type WatchSettings struct {
	// Dir is the directory to watch. Empty means not configured.
	Dir string

	// Pattern is the substring a file name must contain.
	Pattern string

	// Rate is the maximum analyses per second.
	Rate float64
}

// VaultSettings holds image vault configuration.
type VaultSettings struct {
	// Enabled copies Bank and Note screenshots into the vault.
	Enabled bool

	// Dir overrides the vault location.
	Dir string
}

// OCRSettings holds text recognition configuration.
type OCRSettings struct {
	// Language is the tesseract language list, e.g. "vie+eng".
	Language string

	// CropTop is the status bar height in pixels removed before recognition.
	CropTop int

	// MaxDimension downscales larger images before recognition.
	MaxDimension int
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Classifier ClassifierSettings
	Watch      WatchSettings
	Vault      VaultSettings
	OCR        OCRSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Classifier: ClassifierSettings{
			Rules:         DefaultRules(),
			MinScore:      0.1,
			NoteMinLength: 50,
		},
		Watch: WatchSettings{
			Pattern: "Screenshot",
			Rate:    2,
		},
		Vault: VaultSettings{
			Enabled: true,
		},
		OCR: OCRSettings{
			Language:     "vie+eng",
			CropTop:      150,
			MaxDimension: 1024,
		},
	}
}
