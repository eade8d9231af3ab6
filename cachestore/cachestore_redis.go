package cachestore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

// keeps cache entries clear of the window/set/record keyspaces sharing
// the same redis database
const redisCachePrefix = "cache/"

// RedisCacheStore shares one cache across every daemon process, so a
// config purge triggered on one instance is honored by all of them. A
// small in-process TinyLFU tier sits in front of redis; its copies age
// out within the same TTL.
type RedisCacheStore struct {
	entries *cache.Cache
	ttl     time.Duration
}

var _ CacheStore = (*RedisCacheStore)(nil)

func NewRedisCacheStore(redisURL string, ttl time.Duration) (*RedisCacheStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.TODO()).Result(); err != nil {
		return nil, err
	}
	return &RedisCacheStore{
		entries: cache.New(&cache.Options{
			Redis:      rdb,
			LocalCache: cache.NewTinyLFU(10_000, ttl),
		}),
		ttl: ttl,
	}, nil
}

func (s *RedisCacheStore) Get(ctx context.Context, name, key string) (string, error) {
	var val string
	err := s.entries.Get(ctx, redisCachePrefix+cacheKey(name, key), &val)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisCacheStore) Set(ctx context.Context, name, key string, val string) error {
	return s.entries.Set(&cache.Item{
		Ctx:   ctx,
		Key:   redisCachePrefix + cacheKey(name, key),
		Value: val,
		TTL:   s.ttl,
	})
}

func (s *RedisCacheStore) Purge(ctx context.Context, name, key string) error {
	err := s.entries.Delete(ctx, redisCachePrefix+cacheKey(name, key))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}
