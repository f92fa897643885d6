package services

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRules         = "classifier.rules"
	keyMinScore      = "classifier.min_score"
	keyNoteMinLength = "classifier.note_min_length"
	keyKeywordsFile  = "classifier.keywords_file"
	keyWatchDir      = "watch.dir"
	keyWatchPattern  = "watch.pattern"
	keyWatchRate     = "watch.rate"
	keyVaultEnabled  = "vault.enabled"
	keyVaultDir      = "vault.dir"
	keyOCRLanguage   = "ocr.language"
	keyOCRCropTop    = "ocr.crop_top"
	keyOCRMaxDim     = "ocr.max_dimension"
)

// setting reads and writes one key of AppSettings as text.
type setting struct {
	get func(s *domain.AppSettings) string
	set func(s *domain.AppSettings, value string) error
}

var settingsTable = map[string]setting{
	keyRules: {
		get: func(s *domain.AppSettings) string { return strings.Join(s.Classifier.Rules, ",") },
		set: func(s *domain.AppSettings, v string) error {
			rules, err := parseRules(v)
			if err != nil {
				return err
			}
			s.Classifier.Rules = rules
			return nil
		},
	},
	keyMinScore: {
		get: func(s *domain.AppSettings) string { return formatFloat(s.Classifier.MinScore) },
		set: func(s *domain.AppSettings, v string) error {
			f, err := parseFloat(v, 0, 1)
			s.Classifier.MinScore = f
			return err
		},
	},
	keyNoteMinLength: {
		get: func(s *domain.AppSettings) string { return strconv.Itoa(s.Classifier.NoteMinLength) },
		set: func(s *domain.AppSettings, v string) error {
			n, err := parseInt(v, 0)
			s.Classifier.NoteMinLength = n
			return err
		},
	},
	keyKeywordsFile: {
		get: func(s *domain.AppSettings) string { return s.Classifier.KeywordsFile },
		set: func(s *domain.AppSettings, v string) error { s.Classifier.KeywordsFile = v; return nil },
	},
	keyWatchDir: {
		get: func(s *domain.AppSettings) string { return s.Watch.Dir },
		set: func(s *domain.AppSettings, v string) error { s.Watch.Dir = v; return nil },
	},
	keyWatchPattern: {
		get: func(s *domain.AppSettings) string { return s.Watch.Pattern },
		set: func(s *domain.AppSettings, v string) error { s.Watch.Pattern = v; return nil },
	},
	keyWatchRate: {
		get: func(s *domain.AppSettings) string { return formatFloat(s.Watch.Rate) },
		set: func(s *domain.AppSettings, v string) error {
			f, err := parseFloat(v, 0, 1000)
			if err == nil && f == 0 {
				err = fmt.Errorf("rate must be positive: %w", domain.ErrInvalidInput)
			}
			s.Watch.Rate = f
			return err
		},
	},
	keyVaultEnabled: {
		get: func(s *domain.AppSettings) string { return strconv.FormatBool(s.Vault.Enabled) },
		set: func(s *domain.AppSettings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%q is not a boolean: %w", v, domain.ErrInvalidInput)
			}
			s.Vault.Enabled = b
			return nil
		},
	},
	keyVaultDir: {
		get: func(s *domain.AppSettings) string { return s.Vault.Dir },
		set: func(s *domain.AppSettings, v string) error { s.Vault.Dir = v; return nil },
	},
	keyOCRLanguage: {
		get: func(s *domain.AppSettings) string { return s.OCR.Language },
		set: func(s *domain.AppSettings, v string) error {
			if v == "" {
				return fmt.Errorf("language is required: %w", domain.ErrInvalidInput)
			}
			s.OCR.Language = v
			return nil
		},
	},
	keyOCRCropTop: {
		get: func(s *domain.AppSettings) string { return strconv.Itoa(s.OCR.CropTop) },
		set: func(s *domain.AppSettings, v string) error {
			n, err := parseInt(v, 0)
			s.OCR.CropTop = n
			return err
		},
	},
	keyOCRMaxDim: {
		get: func(s *domain.AppSettings) string { return strconv.Itoa(s.OCR.MaxDimension) },
		set: func(s *domain.AppSettings, v string) error {
			n, err := parseInt(v, 1)
			s.OCR.MaxDimension = n
			return err
		},
	},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	rules := s.configStore.GetStringSlice(keyRules)
	if len(rules) == 0 {
		rules = defaults.Classifier.Rules
	}

	settings := &domain.AppSettings{
		Classifier: domain.ClassifierSettings{
			Rules:         rules,
			MinScore:      s.getFloat(keyMinScore, defaults.Classifier.MinScore),
			NoteMinLength: s.getInt(keyNoteMinLength, defaults.Classifier.NoteMinLength),
			KeywordsFile:  s.configStore.GetString(keyKeywordsFile),
		},
		Watch: domain.WatchSettings{
			Dir:     s.configStore.GetString(keyWatchDir),
			Pattern: s.getString(keyWatchPattern, defaults.Watch.Pattern),
			Rate:    s.getFloat(keyWatchRate, defaults.Watch.Rate),
		},
		Vault: domain.VaultSettings{
			Enabled: s.getBool(keyVaultEnabled, defaults.Vault.Enabled),
			Dir:     s.configStore.GetString(keyVaultDir),
		},
		OCR: domain.OCRSettings{
			Language:     s.getString(keyOCRLanguage, defaults.OCR.Language),
			CropTop:      s.getInt(keyOCRCropTop, defaults.OCR.CropTop),
			MaxDimension: s.getInt(keyOCRMaxDim, defaults.OCR.MaxDimension),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyRules, settings.Classifier.Rules},
		{keyMinScore, settings.Classifier.MinScore},
		{keyNoteMinLength, settings.Classifier.NoteMinLength},
		{keyKeywordsFile, settings.Classifier.KeywordsFile},
		{keyWatchDir, settings.Watch.Dir},
		{keyWatchPattern, settings.Watch.Pattern},
		{keyWatchRate, settings.Watch.Rate},
		{keyVaultEnabled, settings.Vault.Enabled},
		{keyVaultDir, settings.Vault.Dir},
		{keyOCRLanguage, settings.OCR.Language},
		{keyOCRCropTop, settings.OCR.CropTop},
		{keyOCRMaxDim, settings.OCR.MaxDimension},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	entry, ok := settingsTable[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := entry.set(settings, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return s.Save(settings)
}

// Lookup returns the current value of a single setting as text.
func (s *SettingsService) Lookup(key string) (string, error) {
	entry, ok := settingsTable[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return entry.get(settings), nil
}

// Keys returns all known setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingsTable))
	for k := range settingsTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// parseRules parses a comma-separated cascade. Empty restores the default.
func parseRules(v string) ([]string, error) {
	if v == "" {
		return domain.DefaultRules(), nil
	}
	known := domain.DefaultRules()
	var rules []string
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown rule %q: %w", name, domain.ErrInvalidInput)
		}
		if slices.Contains(rules, name) {
			return nil, fmt.Errorf("duplicate rule %q: %w", name, domain.ErrInvalidInput)
		}
		rules = append(rules, name)
	}
	return rules, nil
}

func parseFloat(v string, lo, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", v, domain.ErrInvalidInput)
	}
	if f < lo || f > hi {
		return 0, fmt.Errorf("%v outside [%v, %v]: %w", f, lo, hi, domain.ErrInvalidInput)
	}
	return f, nil
}

func parseInt(v string, lo int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer: %w", v, domain.ErrInvalidInput)
	}
	if n < lo {
		return 0, fmt.Errorf("%d is below %d: %w", n, lo, domain.ErrInvalidInput)
	}
	return n, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
