package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
)

// BlockRepository 屏蔽边仓储，形态与 FollowRepository 对称
type BlockRepository interface {
	Create(ctx context.Context, blockerID, blockedID string) (*model.Block, error)
	GetByID(ctx context.Context, id string) (*model.Block, error)
	DeleteByID(ctx context.Context, id string) error
	Exists(ctx context.Context, blockerID, blockedID string) (bool, error)
	ListBlocked(ctx context.Context, blockerID string, offset, limit int) ([]*model.Block, error)
	ListBlockedIDs(ctx context.Context, blockerID string) ([]string, error)
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository { return &blockRepository{db: db} }

func (r *blockRepository) Create(ctx context.Context, blockerID, blockedID string) (*model.Block, error) {
	b := &model.Block{ID: uuid.New().String(), BlockerID: blockerID, BlockedID: blockedID}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (r *blockRepository) GetByID(ctx context.Context, id string) (*model.Block, error) {
	var b model.Block
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blockRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Block{}).Error
}

func (r *blockRepository) Exists(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *blockRepository) ListBlocked(ctx context.Context, blockerID string, offset, limit int) ([]*model.Block, error) {
	var res []*model.Block
	err := r.db.WithContext(ctx).Where("blocker_id = ?", blockerID).Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *blockRepository) ListBlockedIDs(ctx context.Context, blockerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Block{}).
		Where("blocker_id = ?", blockerID).
		Pluck("blocked_id", &ids).Error
	return ids, err
}
