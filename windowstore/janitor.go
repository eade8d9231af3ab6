package windowstore

import (
	"context"
	"log/slog"
	"time"
)

const (
	// how often the background sweep runs
	DefaultSweepInterval = 5 * time.Minute
	// windows idle for longer than this are evicted
	DefaultIdleThreshold = 60 * time.Second
)

// Janitor periodically evicts idle windows from a MemWindowStore, bounding
// memory independent of traffic patterns. It is explicitly constructed and
// owned by the process lifecycle; Run returns when the context is
// cancelled. The redis store needs no janitor (keys carry TTLs).
type Janitor struct {
	Logger   *slog.Logger
	Store    *MemWindowStore
	Interval time.Duration
	Idle     time.Duration
}

func NewJanitor(logger *slog.Logger, store *MemWindowStore) *Janitor {
	return &Janitor{
		Logger:   logger,
		Store:    store,
		Interval: DefaultSweepInterval,
		Idle:     DefaultIdleThreshold,
	}
}

func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			evicted := j.Store.sweep(now, j.Idle)
			if evicted > 0 {
				j.Logger.Debug("window sweep complete", "evicted", evicted)
			}
		}
	}
}
