package driving

import "github.com/custodia-labs/shotbrain/internal/core/domain"

// SettingsService reads and edits config.toml through typed settings.
// Unset keys read as their defaults.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// Set parses value for a dotted key such as "watch.rate". Unknown keys
	// and out-of-range values fail with domain.ErrInvalidInput.
	Set(key, value string) error

	// Lookup formats the current value of key the way Set accepts it.
	Lookup(key string) (string, error)

	// Keys lists every settable key in sorted order.
	Keys() []string

	GetDefaults() domain.AppSettings
}
