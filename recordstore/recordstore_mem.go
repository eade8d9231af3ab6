package recordstore

import (
	"context"
	"sync"
)

type MemMemberRecordStore struct {
	mu   sync.Mutex
	data map[string][]Entry
}

func NewMemMemberRecordStore() *MemMemberRecordStore {
	return &MemMemberRecordStore{
		data: make(map[string][]Entry),
	}
}

func (s *MemMemberRecordStore) Append(ctx context.Context, guildID, userID string, ent Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memberKey(guildID, userID)
	s.data[k] = append(s.data[k], ent)
	return nil
}

func (s *MemMemberRecordStore) List(ctx context.Context, guildID, userID string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[memberKey(guildID, userID)]
	if !ok {
		return []Entry{}, nil
	}
	out := make([]Entry, len(v))
	copy(out, v)
	return out, nil
}
