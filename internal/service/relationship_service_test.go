package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/litreview/internal/cache"
)

func TestFollow_UnknownHandle(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")

	_, err := f.relSvc.Follow(context.Background(), a.ID, "nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestFollow_Self(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")

	_, err := f.relSvc.Follow(context.Background(), a.ID, "alice")
	assert.ErrorIs(t, err, ErrFollowSelf)
}

func TestFollow_Duplicate(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	f.user(t, "bob")
	ctx := context.Background()

	_, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)

	_, err = f.relSvc.Follow(ctx, a.ID, "bob")
	assert.ErrorIs(t, err, ErrDuplicateFollow)
}

func TestUnfollow_OwnershipAndExistence(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	f.user(t, "bob")
	c := f.user(t, "carol")
	ctx := context.Background()

	edge, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)

	// 只有边的 follower 能删
	err = f.relSvc.Unfollow(ctx, edge.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, f.relSvc.Unfollow(ctx, edge.ID, a.ID))

	// 删不存在的边不是幂等成功，而是 NotFound
	err = f.relSvc.Unfollow(ctx, edge.ID, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFolloweeIDs_NeverContainsSelf(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	f.user(t, "bob")
	f.user(t, "carol")
	ctx := context.Background()

	_, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)
	_, err = f.relSvc.Follow(ctx, a.ID, "carol")
	require.NoError(t, err)

	ids, err := f.relSvc.FolloweeIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.NotContains(t, ids, a.ID)
}

func TestFolloweeIDs_CacheInvalidation(t *testing.T) {
	f := setup(t)
	mr := miniredis.RunT(t)
	followCache := cache.NewFollowCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	relSvc := NewRelationshipService(f.userRepo, f.followRepo, f.blockRepo, followCache)

	a := f.user(t, "alice")
	f.user(t, "bob")
	f.user(t, "carol")
	ctx := context.Background()

	bobEdge, err := relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)

	// 第一次读穿透并回填
	ids, err := relSvc.FolloweeIDs(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	// 新增关注必须使缓存失效，否则 feed 读到旧集合
	_, err = relSvc.Follow(ctx, a.ID, "carol")
	require.NoError(t, err)
	ids, err = relSvc.FolloweeIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.NoError(t, relSvc.Unfollow(ctx, bobEdge.ID, a.ID))
	ids, err = relSvc.FolloweeIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestBlock_SymmetricRules(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	f.user(t, "bob")
	ctx := context.Background()

	_, err := f.relSvc.Block(ctx, a.ID, "alice")
	assert.ErrorIs(t, err, ErrBlockSelf)

	edge, err := f.relSvc.Block(ctx, a.ID, "bob")
	require.NoError(t, err)

	_, err = f.relSvc.Block(ctx, a.ID, "bob")
	assert.ErrorIs(t, err, ErrDuplicateBlock)

	require.NoError(t, f.relSvc.Unblock(ctx, edge.ID, a.ID))
	assert.ErrorIs(t, f.relSvc.Unblock(ctx, edge.ID, a.ID), ErrNotFound)
}
