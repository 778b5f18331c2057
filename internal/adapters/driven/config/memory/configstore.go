package memory

import (
	"sync"

	"github.com/custodia-labs/studybuddy/internal/adapters/driven/config"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
// It backs tests and serves as the fallback when no config file can be used.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates a new in-memory config store seeded with values.
func NewConfigStore(values ...map[string]any) *ConfigStore {
	s := &ConfigStore{
		values: make(map[string]any),
	}
	for _, m := range values {
		for k, v := range m {
			s.values[k] = v
		}
	}
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string value, or "" when missing or not a string.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	return config.AsString(v)
}

// GetInt retrieves an integer value, or 0 when missing or not numeric.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	return config.AsInt(v)
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op; nothing outlives the process.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; the store starts from its seed values.
func (s *ConfigStore) Load() error { return nil }

// Path reports that the store has no backing file.
func (s *ConfigStore) Path() string { return ":memory:" }
