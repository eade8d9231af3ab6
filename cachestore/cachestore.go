// Package cachestore caches short-lived JSON blobs under a namespace plus
// key, with one TTL per store. Its main customer is the engine's guild
// config lookup, which reads policy on every message but tolerates a few
// seconds of staleness after a config change.
package cachestore

import (
	"context"
)

// CacheStore get/set/purge semantics: Get returns the empty string on a
// miss, and a Set is visible to Gets until the TTL lapses or the entry is
// purged.
type CacheStore interface {
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}

func cacheKey(name, key string) string {
	return name + "/" + key
}
