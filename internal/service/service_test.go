package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
)

type fixture struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	blockRepo  repository.BlockRepository
	ticketRepo repository.TicketRepository
	reviewRepo repository.ReviewRepository
	relSvc     RelationshipService
	contentSvc ContentService
	feedSvc    FeedService
}

func setup(t *testing.T, opts ...FeedOption) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Block{}, &model.Ticket{}, &model.Review{}))

	f := &fixture{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		followRepo: repository.NewFollowRepository(db),
		blockRepo:  repository.NewBlockRepository(db),
		ticketRepo: repository.NewTicketRepository(db),
		reviewRepo: repository.NewReviewRepository(db),
	}
	f.relSvc = NewRelationshipService(f.userRepo, f.followRepo, f.blockRepo, nil)
	f.contentSvc = NewContentService(db, f.ticketRepo, f.reviewRepo)
	f.feedSvc = NewFeedService(f.relSvc, f.ticketRepo, f.reviewRepo, opts...)
	return f
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: fmt.Sprintf("%s@example.com", name), Password: "p"}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}
