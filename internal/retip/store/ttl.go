package store

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/oloBion/retip/internal/retip/entity"
)

// TTLStore memoizes descriptor values and forgets them after a fixed time.
// Expired entries are evicted by a background goroutine until Close.
type TTLStore struct {
	cache *ttlcache.Cache[string, map[string]entity.Value]
	stop  sync.Once
}

func NewTTLStore(ttl time.Duration) *TTLStore {
	cache := ttlcache.New[string, map[string]entity.Value](
		ttlcache.WithTTL[string, map[string]entity.Value](ttl),
	)
	go cache.Start()

	return &TTLStore{cache: cache}
}

func (s *TTLStore) Get(ctx context.Context, structure string) (map[string]entity.Value, bool) {
	item := s.cache.Get(structure)
	if item == nil || item.IsExpired() {
		return nil, false
	}

	return maps.Clone(item.Value()), true
}

func (s *TTLStore) Set(ctx context.Context, structure string, values map[string]entity.Value) {
	s.cache.Set(structure, maps.Clone(values), ttlcache.DefaultTTL)
}

func (s *TTLStore) Len() int {
	return s.cache.Len()
}

func (s *TTLStore) Close(context.Context) error {
	s.stop.Do(s.cache.Stop)
	return nil
}
