package kmlog

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. It is useful for tests and
// for callers that handle durability themselves
type MemoryStore struct {
	items map[string][]byte
	mu    sync.RWMutex
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: map[string][]byte{},
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(val), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = bytes.Clone(value)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
