package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
)

// TicketInput 建帖字段；长度校验在表单层（binding），种子工具自行截断
type TicketInput struct {
	Title       string
	Description string
	ImageRef    string
}

// ReviewInput 评价字段
type ReviewInput struct {
	Rating   int
	Headline string
	Body     string
}

// ContentService 内容服务：Ticket / Review 的全部变更与查询
// owner 一律取认证身份，不信任客户端传入
type ContentService interface {
	CreateTicket(ctx context.Context, ownerID string, in TicketInput) (*model.Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (*model.Ticket, error)
	UpdateTicket(ctx context.Context, ticketID, requesterID string, in TicketInput) (*model.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID, requesterID string) error
	CreateReview(ctx context.Context, ownerID, ticketID string, in ReviewInput) (*model.Review, error)
	// CreateTicketWithReview 同一事务内建帖并自评；任一步失败则全部回滚
	CreateTicketWithReview(ctx context.Context, ownerID string, t TicketInput, r ReviewInput) (*model.Ticket, *model.Review, error)
	UpdateReview(ctx context.Context, reviewID, requesterID string, in ReviewInput) (*model.Review, error)
	DeleteReview(ctx context.Context, reviewID, requesterID string) error
	ListByOwner(ctx context.Context, userID string) ([]*model.Ticket, []*model.Review, error)
}

type contentService struct {
	db         *gorm.DB
	ticketRepo repository.TicketRepository
	reviewRepo repository.ReviewRepository
}

func NewContentService(db *gorm.DB, ticketRepo repository.TicketRepository, reviewRepo repository.ReviewRepository) ContentService {
	return &contentService{db: db, ticketRepo: ticketRepo, reviewRepo: reviewRepo}
}

func (s *contentService) CreateTicket(ctx context.Context, ownerID string, in TicketInput) (*model.Ticket, error) {
	t := &model.Ticket{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		ImageRef:    in.ImageRef,
	}
	if err := s.ticketRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *contentService) GetTicket(ctx context.Context, ticketID string) (*model.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *contentService) UpdateTicket(ctx context.Context, ticketID, requesterID string, in TicketInput) (*model.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if t.UserID != requesterID {
		return nil, ErrNotOwner
	}
	t.Title = in.Title
	t.Description = in.Description
	t.ImageRef = in.ImageRef
	if err := s.ticketRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *contentService) DeleteTicket(ctx context.Context, ticketID, requesterID string) error {
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if t.UserID != requesterID {
		return ErrNotOwner
	}
	return s.ticketRepo.DeleteCascade(ctx, ticketID)
}

func (s *contentService) CreateReview(ctx context.Context, ownerID, ticketID string, in ReviewInput) (*model.Review, error) {
	if in.Rating < model.RatingMin || in.Rating > model.RatingMax {
		return nil, ErrInvalidRating
	}
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	exists, err := s.reviewRepo.ExistsForUserTicket(ctx, ownerID, ticketID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}
	rv := &model.Review{
		ID:       uuid.New().String(),
		UserID:   ownerID,
		TicketID: ticketID,
		Rating:   in.Rating,
		Headline: in.Headline,
		Body:     in.Body,
	}
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return rv, nil
}

func (s *contentService) CreateTicketWithReview(ctx context.Context, ownerID string, t TicketInput, r ReviewInput) (*model.Ticket, *model.Review, error) {
	if r.Rating < model.RatingMin || r.Rating > model.RatingMax {
		return nil, nil, ErrInvalidRating
	}
	now := time.Now()
	ticket := &model.Ticket{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       t.Title,
		Description: t.Description,
		ImageRef:    t.ImageRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	review := &model.Review{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		TicketID:  ticket.ID,
		Rating:    r.Rating,
		Headline:  r.Headline,
		Body:      r.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ticket, review, nil
}

func (s *contentService) UpdateReview(ctx context.Context, reviewID, requesterID string, in ReviewInput) (*model.Review, error) {
	if in.Rating < model.RatingMin || in.Rating > model.RatingMax {
		return nil, ErrInvalidRating
	}
	rv, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, ErrNotFound
	}
	if rv.UserID != requesterID {
		return nil, ErrNotOwner
	}
	rv.Rating = in.Rating
	rv.Headline = in.Headline
	rv.Body = in.Body
	if err := s.reviewRepo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *contentService) DeleteReview(ctx context.Context, reviewID, requesterID string) error {
	rv, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv == nil {
		return ErrNotFound
	}
	if rv.UserID != requesterID {
		return ErrNotOwner
	}
	return s.reviewRepo.DeleteByID(ctx, reviewID)
}

func (s *contentService) ListByOwner(ctx context.Context, userID string) ([]*model.Ticket, []*model.Review, error) {
	tickets, err := s.ticketRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.reviewRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return tickets, reviews, nil
}
