package cachestore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemCacheStore is a process-local cache: a capacity-bounded LRU whose
// entries all expire after the same interval. Suits single-instance
// deployments; with several daemon processes each holds its own copy and
// a purge only reaches the local one.
type MemCacheStore struct {
	entries *expirable.LRU[string, string]
}

var _ CacheStore = (*MemCacheStore)(nil)

func NewMemCacheStore(capacity int, ttl time.Duration) *MemCacheStore {
	return &MemCacheStore{
		entries: expirable.NewLRU[string, string](capacity, nil, ttl),
	}
}

func (s *MemCacheStore) Get(ctx context.Context, name, key string) (string, error) {
	val, ok := s.entries.Get(cacheKey(name, key))
	if !ok {
		// expired entries surface the same way as never-set ones
		return "", nil
	}
	return val, nil
}

func (s *MemCacheStore) Set(ctx context.Context, name, key string, val string) error {
	s.entries.Add(cacheKey(name, key), val)
	return nil
}

func (s *MemCacheStore) Purge(ctx context.Context, name, key string) error {
	s.entries.Remove(cacheKey(name, key))
	return nil
}
