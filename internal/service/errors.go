package service

import "errors"

// 服务层错误集合，由 handler 翻译成 HTTP 状态码
var (
	ErrUnknownUser        = errors.New("unknown user")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrFollowSelf         = errors.New("cannot follow self")
	ErrBlockSelf          = errors.New("cannot block self")
	ErrDuplicateFollow    = errors.New("already following this user")
	ErrDuplicateBlock     = errors.New("already blocking this user")
	ErrNotOwner           = errors.New("not the owner")
	ErrNotFound           = errors.New("not found")
	ErrInvalidRating      = errors.New("rating must be between 0 and 5")
	ErrDuplicateReview    = errors.New("ticket already reviewed by this user")
)
