package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
)

func newTicket(t *testing.T, db *gorm.DB, ownerID, title string) *model.Ticket {
	t.Helper()
	tk := &model.Ticket{ID: uuid.New().String(), UserID: ownerID, Title: title, CreatedAt: time.Now()}
	require.NoError(t, db.Create(tk).Error)
	return tk
}

func newReview(t *testing.T, db *gorm.DB, ownerID, ticketID string) *model.Review {
	t.Helper()
	rv := &model.Review{ID: uuid.New().String(), UserID: ownerID, TicketID: ticketID, Rating: 3, Headline: "h", CreatedAt: time.Now()}
	require.NoError(t, db.Create(rv).Error)
	return rv
}

func TestReviewRepository_UniqueUserTicket(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	tk := newTicket(t, db, users[0].ID, "t")

	err := repo.Create(ctx, &model.Review{UserID: users[1].ID, TicketID: tk.ID, Rating: 4, Headline: "first"})
	require.NoError(t, err)

	err = repo.Create(ctx, &model.Review{UserID: users[1].ID, TicketID: tk.ID, Rating: 2, Headline: "second"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestReviewRepository_ListVisible(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 4)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	viewer, followed, stranger, other := users[0], users[1], users[2], users[3]

	viewerTicket := newTicket(t, db, viewer.ID, "viewer's ticket")
	otherTicket := newTicket(t, db, other.ID, "other's ticket")

	rFollowed := newReview(t, db, followed.ID, otherTicket.ID)   // 关注对象写的，可见
	rStrangerOnMine := newReview(t, db, stranger.ID, viewerTicket.ID) // 陌生人评我的帖，可见
	rStrangerElsewhere := newReview(t, db, stranger.ID, otherTicket.ID) // 陌生人评别处，不可见
	rMine := newReview(t, db, viewer.ID, otherTicket.ID) // 自己写的，可见

	visible := []string{viewer.ID, followed.ID}
	got, err := repo.ListVisible(ctx, viewer.ID, visible)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, rv := range got {
		ids[i] = rv.ID
	}
	assert.ElementsMatch(t, []string{rFollowed.ID, rStrangerOnMine.ID, rMine.ID}, ids)
	assert.NotContains(t, ids, rStrangerElsewhere.ID)
}

func TestReviewRepository_ListVisible_FollowedReviewOnOwnTicketOnce(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, 2)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	viewer, followed := users[0], users[1]
	tk := newTicket(t, db, viewer.ID, "mine")
	rv := newReview(t, db, followed.ID, tk.ID)

	// 关注对象评我的帖：两个 OR 分支只有 (a) 命中，结果恰好一条
	got, err := repo.ListVisible(ctx, viewer.ID, []string{viewer.ID, followed.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rv.ID, got[0].ID)
}
