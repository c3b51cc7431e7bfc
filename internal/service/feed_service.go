package service

import (
	"context"
	"sort"
	"time"

	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
)

// FeedKind 渲染层按 kind 分支展示
type FeedKind string

const (
	KindTicket FeedKind = "TICKET"
	KindReview FeedKind = "REVIEW"
)

// FeedItem 单条 feed 项；不改动底层实体，只做 kind 打标
type FeedItem struct {
	Kind      FeedKind      `json:"kind"`
	CreatedAt time.Time     `json:"created_at"`
	Ticket    *model.Ticket `json:"ticket,omitempty"`
	Review    *model.Review `json:"review,omitempty"`
}

// ID 条目标识，用于确定性排序
func (it FeedItem) ID() string {
	if it.Kind == KindTicket {
		return it.Ticket.ID
	}
	return it.Review.ID
}

// AuthorID 条目作者，用于排除过滤器
func (it FeedItem) AuthorID() string {
	if it.Kind == KindTicket {
		return it.Ticket.UserID
	}
	return it.Review.UserID
}

// ExcludeFilter 可插拔的作者排除钩子
// 屏蔽是否影响可见性是产品层决策，算法本身不感知
type ExcludeFilter interface {
	ExcludedAuthors(ctx context.Context, viewerID string) (map[string]struct{}, error)
}

// BlockedAuthorFilter 按屏蔽边排除作者
type BlockedAuthorFilter struct {
	blockRepo repository.BlockRepository
}

func NewBlockedAuthorFilter(blockRepo repository.BlockRepository) *BlockedAuthorFilter {
	return &BlockedAuthorFilter{blockRepo: blockRepo}
}

func (f *BlockedAuthorFilter) ExcludedAuthors(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	ids, err := f.blockRepo.ListBlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// FeedService 可见性引擎：算出观察者的个性化 feed
type FeedService interface {
	// BuildFeed 规则：
	//   Ticket 可见 iff owner ∈ following(V) ∪ {V}
	//   Review 可见 iff owner ∈ following(V) ∪ {V}
	//              或 (ticket.owner = V 且 owner ∉ following(V) ∪ {V})
	// 合并后按 created_at 降序，平局先 Ticket 再按 id
	BuildFeed(ctx context.Context, viewerID string) ([]FeedItem, error)
	// UserPosts owner = V 的简化变体，不查关系链
	UserPosts(ctx context.Context, userID string) ([]FeedItem, error)
}

type feedService struct {
	relSvc     RelationshipService
	ticketRepo repository.TicketRepository
	reviewRepo repository.ReviewRepository
	filters    []ExcludeFilter
}

// FeedOption 构造期注入可选行为
type FeedOption func(*feedService)

// WithExcludeFilter 注入作者排除过滤器（如 BlockedAuthorFilter）
func WithExcludeFilter(f ExcludeFilter) FeedOption {
	return func(s *feedService) { s.filters = append(s.filters, f) }
}

func NewFeedService(relSvc RelationshipService, ticketRepo repository.TicketRepository, reviewRepo repository.ReviewRepository, opts ...FeedOption) FeedService {
	s := &feedService{relSvc: relSvc, ticketRepo: ticketRepo, reviewRepo: reviewRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *feedService) BuildFeed(ctx context.Context, viewerID string) ([]FeedItem, error) {
	followees, err := s.relSvc.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	// 可见作者集 = 关注对象 + 本人
	visible := make([]string, 0, len(followees)+1)
	seen := make(map[string]struct{}, len(followees)+1)
	for _, id := range append(followees, viewerID) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		visible = append(visible, id)
	}

	tickets, err := s.ticketRepo.ListByOwners(ctx, visible)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListVisible(ctx, viewerID, visible)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(tickets)+len(reviews))
	for _, t := range tickets {
		items = append(items, FeedItem{Kind: KindTicket, CreatedAt: t.CreatedAt, Ticket: t})
	}
	// 两个 OR 分支按构造互斥，这里仍按 id 去重兜底
	seenReview := make(map[string]struct{}, len(reviews))
	for _, rv := range reviews {
		if _, ok := seenReview[rv.ID]; ok {
			continue
		}
		seenReview[rv.ID] = struct{}{}
		items = append(items, FeedItem{Kind: KindReview, CreatedAt: rv.CreatedAt, Review: rv})
	}

	items, err = s.applyFilters(ctx, viewerID, items)
	if err != nil {
		return nil, err
	}
	sortFeed(items)
	return items, nil
}

func (s *feedService) UserPosts(ctx context.Context, userID string) ([]FeedItem, error) {
	tickets, err := s.ticketRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]FeedItem, 0, len(tickets)+len(reviews))
	for _, t := range tickets {
		items = append(items, FeedItem{Kind: KindTicket, CreatedAt: t.CreatedAt, Ticket: t})
	}
	for _, rv := range reviews {
		items = append(items, FeedItem{Kind: KindReview, CreatedAt: rv.CreatedAt, Review: rv})
	}
	sortFeed(items)
	return items, nil
}

func (s *feedService) applyFilters(ctx context.Context, viewerID string, items []FeedItem) ([]FeedItem, error) {
	if len(s.filters) == 0 {
		return items, nil
	}
	excluded := make(map[string]struct{})
	for _, f := range s.filters {
		set, err := f.ExcludedAuthors(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for id := range set {
			excluded[id] = struct{}{}
		}
	}
	if len(excluded) == 0 {
		return items, nil
	}
	kept := items[:0]
	for _, it := range items {
		if _, ok := excluded[it.AuthorID()]; ok {
			continue
		}
		kept = append(kept, it)
	}
	return kept, nil
}

// sortFeed created_at 降序；平局先 TICKET 再比 id，保证输出确定
func sortFeed(items []FeedItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		if items[i].Kind != items[j].Kind {
			return items[i].Kind == KindTicket
		}
		return items[i].ID() < items[j].ID()
	})
}
