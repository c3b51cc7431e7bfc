package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/litreview/internal/model"
)

func (f *fixture) ticketAt(t *testing.T, ownerID, title string, at time.Time) *model.Ticket {
	t.Helper()
	tk := &model.Ticket{ID: uuid.New().String(), UserID: ownerID, Title: title, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.db.Create(tk).Error)
	return tk
}

func (f *fixture) reviewAt(t *testing.T, ownerID, ticketID string, at time.Time) *model.Review {
	t.Helper()
	rv := &model.Review{ID: uuid.New().String(), UserID: ownerID, TicketID: ticketID, Rating: 3, Headline: "h", CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.db.Create(rv).Error)
	return rv
}

func feedIDs(items []FeedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

// 场景：A 关注 B；C 是陌生人
//   B 发 T1          → A 可见
//   C 评 T1 (R1)     → A 不可见（帖不是 A 的，C 也没被关注）
//   A 发 T2，C 评 R2 → R2 可见（帖是 A 的）
func TestBuildFeed_VisibilityScenario(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	b := f.user(t, "bob")
	c := f.user(t, "carol")
	ctx := context.Background()

	_, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	t1 := f.ticketAt(t, b.ID, "T1", base)
	r1 := f.reviewAt(t, c.ID, t1.ID, base.Add(time.Minute))
	t2 := f.ticketAt(t, a.ID, "T2", base.Add(2*time.Minute))
	r2 := f.reviewAt(t, c.ID, t2.ID, base.Add(3*time.Minute))

	items, err := f.feedSvc.BuildFeed(ctx, a.ID)
	require.NoError(t, err)

	ids := feedIDs(items)
	assert.Contains(t, ids, t1.ID)
	assert.Contains(t, ids, t2.ID)
	assert.Contains(t, ids, r2.ID)
	assert.NotContains(t, ids, r1.ID)
	assert.Len(t, items, 3)
}

func TestBuildFeed_OrderingNewestFirst(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	b := f.user(t, "bob")
	ctx := context.Background()

	_, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	old := f.ticketAt(t, b.ID, "old", base)
	mid := f.ticketAt(t, a.ID, "mid", base.Add(time.Minute))
	rv := f.reviewAt(t, b.ID, old.ID, base.Add(2*time.Minute))

	items, err := f.feedSvc.BuildFeed(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, []string{rv.ID, mid.ID, old.ID}, feedIDs(items))
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt),
			"feed must be non-increasing by created_at")
	}
}

func TestBuildFeed_TieBreakDeterministic(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	ctx := context.Background()

	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tk := f.ticketAt(t, a.ID, "same instant", at)
	rv := f.reviewAt(t, a.ID, tk.ID, at)

	// 同一时间戳：Ticket 在前
	for i := 0; i < 5; i++ {
		items, err := f.feedSvc.BuildFeed(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, KindTicket, items[0].Kind)
		assert.Equal(t, rv.ID, items[1].ID())
	}
}

func TestBuildFeed_KindTagging(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	ctx := context.Background()

	at := time.Now().Add(-time.Minute)
	tk := f.ticketAt(t, a.ID, "tagged", at)
	f.reviewAt(t, a.ID, tk.ID, at.Add(time.Second))

	items, err := f.feedSvc.BuildFeed(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, KindReview, items[0].Kind)
	assert.NotNil(t, items[0].Review)
	assert.Nil(t, items[0].Ticket)
	assert.Equal(t, KindTicket, items[1].Kind)
	assert.NotNil(t, items[1].Ticket)
	assert.Nil(t, items[1].Review)
}

func TestBuildFeed_BlockFilterInjected(t *testing.T) {
	f := setup(t)
	blockFilter := NewBlockedAuthorFilter(f.blockRepo)
	filtered := NewFeedService(f.relSvc, f.ticketRepo, f.reviewRepo, WithExcludeFilter(blockFilter))

	a := f.user(t, "alice")
	b := f.user(t, "bob")
	ctx := context.Background()

	_, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)
	_, err = f.relSvc.Block(ctx, a.ID, "bob")
	require.NoError(t, err)

	tk := f.ticketAt(t, b.ID, "from blocked", time.Now().Add(-time.Minute))

	// 默认 feed 不消费屏蔽边
	items, err := f.feedSvc.BuildFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.Contains(t, feedIDs(items), tk.ID)

	// 注入过滤器后同一条数据被排除
	items, err = filtered.BuildFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.NotContains(t, feedIDs(items), tk.ID)
}

func TestUserPosts_OwnContentOnly(t *testing.T) {
	f := setup(t)
	a := f.user(t, "alice")
	b := f.user(t, "bob")
	ctx := context.Background()

	_, err := f.relSvc.Follow(ctx, a.ID, "bob")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	mine := f.ticketAt(t, a.ID, "mine", base)
	theirs := f.ticketAt(t, b.ID, "theirs", base.Add(time.Minute))
	myReview := f.reviewAt(t, a.ID, theirs.ID, base.Add(2*time.Minute))

	items, err := f.feedSvc.UserPosts(ctx, a.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{mine.ID, myReview.ID}, feedIDs(items))
	// 同样按时间降序
	assert.Equal(t, myReview.ID, items[0].ID())
}
