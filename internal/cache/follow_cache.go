package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FollowCache caches the full followee-id list per user as a Redis list.
// Cache-aside: feed reads try here first, relationship mutations invalidate.
// An empty list is indistinguishable from a miss and falls through to the DB.
type FollowCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFollowCache(client *redis.Client, ttl time.Duration) *FollowCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &FollowCache{client: client, ttl: ttl}
}

func key(userID string) string { return fmt.Sprintf("following:index:%s", userID) }

// GetFolloweeIDs returns the cached followee ids and whether the lookup hit.
func (c *FollowCache) GetFolloweeIDs(ctx context.Context, userID string) ([]string, bool) {
	ids, err := c.client.LRange(ctx, key(userID), 0, -1).Result()
	if err != nil || len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

func (c *FollowCache) SetFolloweeIDs(ctx context.Context, userID string, ids []string) {
	if len(ids) == 0 {
		return
	}
	vals := make([]interface{}, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	pipe := c.client.Pipeline()
	pipe.Del(ctx, key(userID))
	pipe.RPush(ctx, key(userID), vals...)
	pipe.Expire(ctx, key(userID), c.ttl)
	_, _ = pipe.Exec(ctx)
}

func (c *FollowCache) Invalidate(ctx context.Context, userID string) {
	_ = c.client.Del(ctx, key(userID)).Err()
}
