package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store used when Redis is not
// configured, and as a test double. A sync.Map gives per-key atomic
// replacement without serializing writes across different keys.
type MemoryStore struct {
	m sync.Map // id → Context
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored context for id, or an empty context.
func (s *MemoryStore) Get(_ context.Context, id string) (Context, error) {
	v, ok := s.m.Load(id)
	if !ok {
		return Context{}, nil
	}
	// Copy out so callers never alias the stored map.
	return v.(Context).Clone(), nil
}

// Update replaces the context for id. The stored value is a private
// copy, so a single Store call is the unit of atomicity.
func (s *MemoryStore) Update(_ context.Context, id string, sc Context) error {
	s.m.Store(id, sc.Clone())
	return nil
}

// Len returns the number of tracked contacts.
func (s *MemoryStore) Len() int {
	n := 0
	s.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
