package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
)

// ReviewRepository 评价仓储
type ReviewRepository interface {
	// Create (user, ticket) 重复时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	DeleteByID(ctx context.Context, id string) error
	ExistsForUserTicket(ctx context.Context, userID, ticketID string) (bool, error)
	ListByOwner(ctx context.Context, userID string) ([]*model.Review, error)
	// ListVisible feed 可见评价：
	//   owner ∈ visibleOwnerIDs
	//   OR (ticket.owner = viewer AND owner ∉ visibleOwnerIDs)
	// visibleOwnerIDs 必须已含 viewer 本人
	ListVisible(ctx context.Context, viewerID string, visibleOwnerIDs []string) ([]*model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository { return &reviewRepository{db: db} }

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{}).Error
}

func (r *reviewRepository) ExistsForUserTicket(ctx context.Context, userID, ticketID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("user_id = ? AND ticket_id = ?", userID, ticketID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *reviewRepository) ListByOwner(ctx context.Context, userID string) ([]*model.Review, error) {
	var res []*model.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *reviewRepository) ListVisible(ctx context.Context, viewerID string, visibleOwnerIDs []string) ([]*model.Review, error) {
	if len(visibleOwnerIDs) == 0 {
		visibleOwnerIDs = []string{viewerID}
	}
	var res []*model.Review
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Joins("JOIN tickets ON tickets.id = reviews.ticket_id").
		Where("reviews.user_id IN ? OR (tickets.user_id = ? AND reviews.user_id NOT IN ?)",
			visibleOwnerIDs, viewerID, visibleOwnerIDs).
		Order("reviews.created_at DESC").
		Find(&res).Error
	return res, err
}
