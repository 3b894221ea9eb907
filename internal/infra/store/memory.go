package store

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Collection][]byte

	// FailOn makes Save fail for the given collection; used to exercise
	// rollback paths.
	FailOn map[Collection]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[Collection][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, c Collection) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.docs[c]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, c Collection, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FailOn[c]; err != nil {
		return err
	}
	b := make([]byte, len(data))
	copy(b, data)
	s.docs[c] = b
	return nil
}
