package windowstore

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisWindowPrefix string = "window/"

// distinguishes same-instant events within this process; gateway
// timestamps often arrive at millisecond or coarser granularity
var memberSeq atomic.Uint64

// RedisWindowStore keeps each window as a redis sorted set scored by event
// time. Pruning and counting happen server-side in a single pipelined
// round-trip, and keys expire on their own, so no janitor is needed.
type RedisWindowStore struct {
	Client *redis.Client
}

func NewRedisWindowStore(redisURL string) (*RedisWindowStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	return &RedisWindowStore{Client: rdb}, nil
}

func (s *RedisWindowStore) Record(ctx context.Context, name, key string, at time.Time, window time.Duration) (int, error) {
	k := redisWindowPrefix + bucketKey(name, key)
	cutoff := at.Add(-window)

	multi := s.Client.Pipeline()
	// the member carries a nonce: sorted sets keep one entry per member,
	// and two events sharing a timestamp are still two events
	member := strconv.FormatInt(at.UnixNano(), 10) + "-" + strconv.FormatUint(memberSeq.Add(1), 10)
	multi.ZAdd(ctx, k, redis.Z{
		Score:  float64(at.UnixNano()),
		Member: member,
	})
	multi.ZRemRangeByScore(ctx, k, "-inf", "("+strconv.FormatInt(cutoff.UnixNano(), 10))
	card := multi.ZCard(ctx, k)
	multi.Expire(ctx, k, window+DefaultIdleThreshold)
	if _, err := multi.Exec(ctx); err != nil {
		return 0, err
	}
	return int(card.Val()), nil
}

func (s *RedisWindowStore) Count(ctx context.Context, name, key string, window time.Duration, at time.Time) (int, error) {
	k := redisWindowPrefix + bucketKey(name, key)
	cutoff := at.Add(-window)
	c, err := s.Client.ZCount(ctx, k, "("+strconv.FormatInt(cutoff.UnixNano(), 10), "+inf").Result()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return int(c), nil
}

func (s *RedisWindowStore) Clear(ctx context.Context, name, key string) error {
	return s.Client.Del(ctx, redisWindowPrefix+bucketKey(name, key)).Err()
}
