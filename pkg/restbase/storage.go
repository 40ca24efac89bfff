package restbase

import "sync"

type (
	// A Storage is a string key-value store holding the session credential.
	Storage interface {
		// GetItem returns the value stored under key.
		// The boolean is false when the key does not exist.
		GetItem(key string) (string, bool, error)
		// SetItem stores value under key.
		SetItem(key, value string) error
		// RemoveItem deletes key. Removing a missing key is not an error.
		RemoveItem(key string) error
	}

	memory struct {
		mu    sync.RWMutex
		items map[string]string
	}
)

// NewMemoryStorage returns a Storage that only lives in memory.
func NewMemoryStorage() Storage {
	return &memory{
		items: make(map[string]string),
	}
}

func (s *memory) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memory) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *memory) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}
