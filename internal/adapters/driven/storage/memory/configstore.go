package memory

import (
	"sync"

	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds settings in a map. Nothing is persisted; Save and Load
// succeed without effect.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := typed[string](s, key)
	return v
}

func (s *ConfigStore) GetBool(key string) bool {
	v, _ := typed[bool](s, key)
	return v
}

// GetInt accepts int and int64 values, and floats with no fraction.
func (s *ConfigStore) GetInt(key string) int {
	f, ok := s.numeric(key)
	if !ok || f != float64(int(f)) {
		return 0
	}
	return int(f)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	f, _ := s.numeric(key)
	return f
}

// GetStringSlice accepts []string, or []any with non-strings dropped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	if list, ok := typed[[]string](s, key); ok {
		return list
	}
	items, ok := typed[[]any](s, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:" so callers can tell the store is not on disk.
func (s *ConfigStore) Path() string { return ":memory:" }

func (s *ConfigStore) numeric(key string) (float64, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch n := val.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func typed[T any](s *ConfigStore, key string) (T, bool) {
	val, _ := s.Get(key)
	v, ok := val.(T)
	return v, ok
}
