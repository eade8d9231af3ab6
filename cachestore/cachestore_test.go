package cachestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCacheStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cs := NewMemCacheStore(10, time.Hour)

	v, err := cs.Get(ctx, "config", "guild1")
	assert.NoError(err)
	assert.Equal("", v)

	assert.NoError(cs.Set(ctx, "config", "guild1", `{"enabled":true}`))
	v, err = cs.Get(ctx, "config", "guild1")
	assert.NoError(err)
	assert.Equal(`{"enabled":true}`, v)

	// different namespaces do not collide
	v, err = cs.Get(ctx, "other", "guild1")
	assert.NoError(err)
	assert.Equal("", v)

	assert.NoError(cs.Purge(ctx, "config", "guild1"))
	v, err = cs.Get(ctx, "config", "guild1")
	assert.NoError(err)
	assert.Equal("", v)
}

func TestMemCacheStoreExpiry(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cs := NewMemCacheStore(10, 10*time.Millisecond)
	assert.NoError(cs.Set(ctx, "config", "guild1", "val"))
	time.Sleep(50 * time.Millisecond)
	v, err := cs.Get(ctx, "config", "guild1")
	assert.NoError(err)
	assert.Equal("", v)
}
