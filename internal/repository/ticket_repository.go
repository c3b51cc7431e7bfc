package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
)

// TicketRepository 求评帖仓储
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	Update(ctx context.Context, ticket *model.Ticket) error
	// DeleteCascade 同一事务内先删关联 Review 再删 Ticket，禁止悬挂引用
	DeleteCascade(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, userID string) ([]*model.Ticket, error)
	// ListByOwners feed 可见帖查询：owner ∈ ids
	ListByOwners(ctx context.Context, ownerIDs []string) ([]*model.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepository{db: db} }

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Ticket{}).Error
	})
}

func (r *ticketRepository) ListByOwner(ctx context.Context, userID string) ([]*model.Ticket, error) {
	var res []*model.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *ticketRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*model.Ticket, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var res []*model.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ownerIDs).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
