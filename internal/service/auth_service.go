package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
	"github.com/d60-Lab/litreview/internal/repository"
	"github.com/d60-Lab/litreview/pkg/token"
)

// AuthService 注册 / 登录；是可见性引擎之外的身份边界
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Login 成功返回 JWT
	Login(ctx context.Context, username, password string) (string, *model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokenMaker *token.Maker
}

func NewAuthService(userRepo repository.UserRepository, tokenMaker *token.Maker) AuthService {
	return &authService{userRepo: userRepo, tokenMaker: tokenMaker}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{Username: username, Email: email, Password: string(hash)}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := s.tokenMaker.Generate(u.ID, u.Username)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
