package store

import (
	"context"
	"maps"
	"sync"

	"github.com/oloBion/retip/internal/retip/entity"
)

// InMemoryStore memoizes descriptor values for the lifetime of the process.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]entity.Value
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]map[string]entity.Value),
	}
}

func (s *InMemoryStore) Get(ctx context.Context, structure string) (map[string]entity.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, ok := s.records[structure]
	if !ok {
		return nil, false
	}

	return maps.Clone(values), true
}

func (s *InMemoryStore) Set(ctx context.Context, structure string, values map[string]entity.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[structure] = maps.Clone(values)
}

// Len returns how many structures are memoized.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

func (s *InMemoryStore) Close(context.Context) error {
	return nil
}
