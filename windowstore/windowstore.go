// Package windowstore maintains per-user, per-rule sliding time windows of
// recent activity, used by burst detectors (message flooding). Windows are
// bounded: every operation prunes entries older than the rule's window, and
// a background janitor evicts idle windows entirely.
package windowstore

import (
	"context"
	"time"
)

// WindowStore tracks event timestamps in a sliding window per (name, key)
// pair. "name" is the rule namespace (eg "msgrate"); "key" identifies the
// subject (eg "guildID/userID").
type WindowStore interface {
	// Record appends an event at the given instant, prunes entries older
	// than the window, and returns the resulting count.
	Record(ctx context.Context, name, key string, at time.Time, window time.Duration) (int, error)
	// Count returns the number of events within the window, without
	// recording anything. Calling Count twice in succession returns the
	// same value.
	Count(ctx context.Context, name, key string, window time.Duration, at time.Time) (int, error)
	// Clear drops the window entirely, so an already-punished burst cannot
	// re-trigger before it naturally expires.
	Clear(ctx context.Context, name, key string) error
}

func bucketKey(name, key string) string {
	return name + "/" + key
}
