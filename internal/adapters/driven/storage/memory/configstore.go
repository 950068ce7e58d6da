package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ErrNotPersisted is returned by Save on a store standing in for a config
// file that could not be opened for writing.
var ErrNotPersisted = errors.New("settings are kept for this run only")

// ConfigStore keeps settings in a map. A store built with NewConfigStoreFrom
// replaces a config file that could not be opened; its values live as long
// as the process and Save reports that nothing reached disk.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	origin string
}

// NewConfigStore returns an empty store with no backing file.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// NewConfigStoreFrom returns a store seeded with a copy of values read from
// origin, the path of the config file it replaces.
func NewConfigStoreFrom(origin string, values map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(values)), origin: origin}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt accepts any numeric form a TOML decoder or a caller may have stored.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch n := val.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func (s *ConfigStore) GetBool(key string) bool {
	b, _ := lookup[bool](s, key)
	return b
}

// GetStringSlice drops non-string elements of a decoded array.
func (s *ConfigStore) GetStringSlice(key string) []string {
	if list, ok := lookup[[]string](s, key); ok {
		return list
	}
	items, ok := lookup[[]any](s, key)
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

// Set always updates the in-process value. On a stand-in store it also
// returns ErrNotPersisted so a settings edit does not look saved.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return s.Save()
}

func (s *ConfigStore) Save() error {
	if s.origin == "" {
		return nil
	}
	return fmt.Errorf("%s: %w", s.origin, ErrNotPersisted)
}

// Load is a no-op: the seed values are the only source.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns the replaced file's path, or ":memory:" for a plain store.
func (s *ConfigStore) Path() string {
	if s.origin == "" {
		return ":memory:"
	}
	return s.origin
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, _ := s.Get(key)
	v, ok := val.(T)
	return v, ok
}
