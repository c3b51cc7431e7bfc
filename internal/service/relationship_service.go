package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/cache"
	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
)

// RelationshipService 关系链服务
// 关注按 handle 发起；取关按边 id，且只能删自己作为 follower 的边
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followeeHandle string) (*model.Follow, error)
	Unfollow(ctx context.Context, edgeID, requesterID string) error
	Block(ctx context.Context, blockerID, blockedHandle string) (*model.Block, error)
	Unblock(ctx context.Context, edgeID, requesterID string) error
	ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]*model.Follow, error)
	ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]*model.Follow, error)
	ListBlocked(ctx context.Context, userID string, page, pageSize int) ([]*model.Block, error)
	// FolloweeIDs feed 可见集的基础；配置了 redis 时走 cache-aside
	FolloweeIDs(ctx context.Context, userID string) ([]string, error)
}

type relationshipService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	blockRepo   repository.BlockRepository
	followCache *cache.FollowCache // 可为 nil
}

func NewRelationshipService(userRepo repository.UserRepository, followRepo repository.FollowRepository, blockRepo repository.BlockRepository, followCache *cache.FollowCache) RelationshipService {
	return &relationshipService{userRepo: userRepo, followRepo: followRepo, blockRepo: blockRepo, followCache: followCache}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followeeHandle string) (*model.Follow, error) {
	followee, err := s.userRepo.GetByUsername(ctx, followeeHandle)
	if err != nil {
		return nil, err
	}
	if followee == nil {
		return nil, ErrUnknownUser
	}
	if followee.ID == followerID {
		return nil, ErrFollowSelf
	}
	exists, err := s.followRepo.Exists(ctx, followerID, followee.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFollow
	}
	f, err := s.followRepo.Create(ctx, followerID, followee.ID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发竞争由唯一索引兜底
		return nil, ErrDuplicateFollow
	}
	if err != nil {
		return nil, err
	}
	if s.followCache != nil {
		s.followCache.Invalidate(ctx, followerID)
	}
	return f, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, edgeID, requesterID string) error {
	edge, err := s.followRepo.GetByID(ctx, edgeID)
	if err != nil {
		return err
	}
	if edge == nil {
		return ErrNotFound
	}
	if edge.FollowerID != requesterID {
		return ErrNotOwner
	}
	if err := s.followRepo.DeleteByID(ctx, edgeID); err != nil {
		return err
	}
	if s.followCache != nil {
		s.followCache.Invalidate(ctx, requesterID)
	}
	return nil
}

func (s *relationshipService) Block(ctx context.Context, blockerID, blockedHandle string) (*model.Block, error) {
	blocked, err := s.userRepo.GetByUsername(ctx, blockedHandle)
	if err != nil {
		return nil, err
	}
	if blocked == nil {
		return nil, ErrUnknownUser
	}
	if blocked.ID == blockerID {
		return nil, ErrBlockSelf
	}
	exists, err := s.blockRepo.Exists(ctx, blockerID, blocked.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBlock
	}
	b, err := s.blockRepo.Create(ctx, blockerID, blocked.ID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateBlock
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *relationshipService) Unblock(ctx context.Context, edgeID, requesterID string) error {
	edge, err := s.blockRepo.GetByID(ctx, edgeID)
	if err != nil {
		return err
	}
	if edge == nil {
		return ErrNotFound
	}
	if edge.BlockerID != requesterID {
		return ErrNotOwner
	}
	return s.blockRepo.DeleteByID(ctx, edgeID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]*model.Follow, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.followRepo.ListFollowings(ctx, userID, offset, limit)
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]*model.Follow, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.followRepo.ListFollowers(ctx, userID, offset, limit)
}

func (s *relationshipService) ListBlocked(ctx context.Context, userID string, page, pageSize int) ([]*model.Block, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.blockRepo.ListBlocked(ctx, userID, offset, limit)
}

func (s *relationshipService) FolloweeIDs(ctx context.Context, userID string) ([]string, error) {
	if s.followCache != nil {
		if ids, ok := s.followCache.GetFolloweeIDs(ctx, userID); ok {
			return ids, nil
		}
	}
	ids, err := s.followRepo.ListFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.followCache != nil {
		s.followCache.SetFolloweeIDs(ctx, userID, ids)
	}
	return ids, nil
}

func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}
