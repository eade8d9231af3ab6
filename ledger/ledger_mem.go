package ledger

import (
	"context"
	"sync"
)

type MemCaseLedger struct {
	mu       sync.Mutex
	counters map[string]int64
	cases    map[string][]Case
}

func NewMemCaseLedger() *MemCaseLedger {
	return &MemCaseLedger{
		counters: make(map[string]int64),
		cases:    make(map[string][]Case),
	}
}

func (l *MemCaseLedger) NextCaseNumber(ctx context.Context, guildID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters[guildID]++
	return l.counters[guildID], nil
}

func (l *MemCaseLedger) RecordCase(ctx context.Context, c *Case) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cases[c.GuildID] = append(l.cases[c.GuildID], *c)
	return nil
}

// Cases returns a copy of the recorded cases for a guild, oldest first.
func (l *MemCaseLedger) Cases(guildID string) []Case {
	l.mu.Lock()
	defer l.mu.Unlock()
	v := l.cases[guildID]
	out := make([]Case, len(v))
	copy(out, v)
	return out
}
