package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFollowRepository_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)

	// 同一 (follower, followee) 第二次插入必须撞唯一键
	_, err = repo.Create(ctx, users[0].ID, users[1].ID)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 反向不算重复
	_, err = repo.Create(ctx, users[1].ID, users[0].ID)
	assert.NoError(t, err)
}

func TestFollowRepository_ListFolloweeIDs(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 4)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, users[0].ID, users[2].ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, users[3].ID, users[0].ID)
	require.NoError(t, err)

	ids, err := repo.ListFolloweeIDs(ctx, users[0].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{users[1].ID, users[2].ID}, ids)

	ids, err = repo.ListFolloweeIDs(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFollowRepository_DeleteByID(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	edge, err := repo.Create(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, edge.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, users[0].ID, got.FollowerID)

	require.NoError(t, repo.DeleteByID(ctx, edge.ID))

	got, err = repo.GetByID(ctx, edge.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := repo.Exists(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepository_ListFollowers(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 3)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, users[1].ID, users[0].ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, users[2].ID, users[0].ID)
	require.NoError(t, err)

	followers, err := repo.ListFollowers(ctx, users[0].ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, followers, 2)
}
