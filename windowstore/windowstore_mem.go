package windowstore

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// MemWindowStore keeps windows in process memory. The outer map is a
// concurrent sharded map, and each window carries its own mutex, so
// contention is confined to a single subject's burst rather than global.
type MemWindowStore struct {
	windows *xsync.MapOf[string, *memWindow]
}

type memWindow struct {
	mu       sync.Mutex
	times    []time.Time
	lastSeen time.Time
}

func NewMemWindowStore() *MemWindowStore {
	return &MemWindowStore{
		windows: xsync.NewMapOf[string, *memWindow](),
	}
}

// prune drops timestamps older than the window. Caller must hold w.mu.
func (w *memWindow) prune(at time.Time, window time.Duration) {
	cutoff := at.Add(-window)
	idx := 0
	for idx < len(w.times) && w.times[idx].Before(cutoff) {
		idx++
	}
	if idx > 0 {
		w.times = append(w.times[:0], w.times[idx:]...)
	}
}

func (s *MemWindowStore) Record(ctx context.Context, name, key string, at time.Time, window time.Duration) (int, error) {
	w, _ := s.windows.LoadOrStore(bucketKey(name, key), &memWindow{})
	w.mu.Lock()
	defer w.mu.Unlock()
	w.times = append(w.times, at)
	w.lastSeen = at
	w.prune(at, window)
	return len(w.times), nil
}

func (s *MemWindowStore) Count(ctx context.Context, name, key string, window time.Duration, at time.Time) (int, error) {
	w, ok := s.windows.Load(bucketKey(name, key))
	if !ok {
		return 0, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(at, window)
	return len(w.times), nil
}

func (s *MemWindowStore) Clear(ctx context.Context, name, key string) error {
	s.windows.Delete(bucketKey(name, key))
	return nil
}

// sweep deletes windows whose most recent event is older than the idle
// threshold. Staleness is re-checked under the per-window lock immediately
// before deletion, so a window that received a new event after the sweep
// began reading it survives.
func (s *MemWindowStore) sweep(now time.Time, idle time.Duration) int {
	evicted := 0
	cutoff := now.Add(-idle)
	s.windows.Range(func(k string, w *memWindow) bool {
		w.mu.Lock()
		stale := w.lastSeen.Before(cutoff)
		if stale {
			s.windows.Delete(k)
			evicted++
		}
		w.mu.Unlock()
		return true
	})
	return evicted
}
