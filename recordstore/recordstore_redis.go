package recordstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

var redisRecordPrefix string = "memberrec/"

// RedisMemberRecordStore appends entries to a redis list per member, so the
// history shape matches the append-only contract directly.
type RedisMemberRecordStore struct {
	Client *redis.Client
}

func NewRedisMemberRecordStore(redisURL string) (*RedisMemberRecordStore, error) {
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
	return &RedisMemberRecordStore{Client: rdb}, nil
}

func (s *RedisMemberRecordStore) Append(ctx context.Context, guildID, userID string, ent Entry) error {
	raw, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	return s.Client.RPush(ctx, redisRecordPrefix+memberKey(guildID, userID), raw).Err()
}

func (s *RedisMemberRecordStore) List(ctx context.Context, guildID, userID string) ([]Entry, error) {
	raws, err := s.Client.LRange(ctx, redisRecordPrefix+memberKey(guildID, userID), 0, -1).Result()
	if err == redis.Nil {
		return []Entry{}, nil
	} else if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		var ent Entry
		if err := json.Unmarshal([]byte(raw), &ent); err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}
