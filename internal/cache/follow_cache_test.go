package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*FollowCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFollowCache(client, time.Minute), mr
}

func TestFollowCache_MissThenHit(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	_, ok := c.GetFolloweeIDs(ctx, "u1")
	assert.False(t, ok)

	c.SetFolloweeIDs(ctx, "u1", []string{"u2", "u3"})

	ids, ok := c.GetFolloweeIDs(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, []string{"u2", "u3"}, ids)
}

func TestFollowCache_Invalidate(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	c.SetFolloweeIDs(ctx, "u1", []string{"u2"})
	c.Invalidate(ctx, "u1")

	_, ok := c.GetFolloweeIDs(ctx, "u1")
	assert.False(t, ok)
}

func TestFollowCache_EmptySetIsMiss(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	// 空集不缓存，读取落回 DB
	c.SetFolloweeIDs(ctx, "u1", nil)
	_, ok := c.GetFolloweeIDs(ctx, "u1")
	assert.False(t, ok)
}

func TestFollowCache_TTLExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	c.SetFolloweeIDs(ctx, "u1", []string{"u2"})
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetFolloweeIDs(ctx, "u1")
	assert.False(t, ok)
}
