package storage

import (
	"context"
	"sync"
)

// MemoryStore implements KeyedStore with in-memory storage. Nothing
// survives a restart; it exists for tests and the default dev setup.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, exists := s.values[key]
	if !exists {
		return nil, ErrKeyNotFound
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, nil
}

func (s *MemoryStore) Write(_ context.Context, key string, payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = cp
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
