package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store for single-node deployments and tests.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemory builds a MemoryStore that sweeps expired entries every cleanup interval.
func NewMemory(cleanup time.Duration) *MemoryStore {
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, cleanup)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := s.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	val, ok := raw.([]byte)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.items.Set(key, stored, ttl)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len reports the number of live entries.
func (s *MemoryStore) Len() int { return s.items.ItemCount() }
