package snapshotstore

import (
	"context"
	"errors"
	"sync"

	"agroute-trip-service/internal/ports"
)

// MemorySnapshotStore is an in-process SnapshotStore for single-binary
// runs and tests. It has no expiry; entries live for the process
// lifetime.
type MemorySnapshotStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{m: make(map[string]string)}
}

func (s *MemorySnapshotStore) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("snapshot store: key must be non-empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemorySnapshotStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ports.ErrSnapshotNotFound
	}
	return v, nil
}
