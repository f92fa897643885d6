package driven

// ConfigStore is a flat key/value view of the settings file. Keys are
// dotted ("classifier.min_score", "watch.dir"); how they are laid out on
// disk is up to the implementation.
//
// Typed getters return the zero value when the key is missing or holds a
// different type. GetFloat widens integers; GetInt accepts floats only when
// they have no fractional part.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores a value and persists it before returning.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the backing file, or ":memory:".
	Path() string
}
