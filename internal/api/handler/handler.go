package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/litreview/internal/service"
	"github.com/d60-Lab/litreview/pkg/response"
)

// Handler 聚合全部 HTTP handler 依赖
type Handler struct {
	authSvc    service.AuthService
	relSvc     service.RelationshipService
	contentSvc service.ContentService
	feedSvc    service.FeedService
}

func New(authSvc service.AuthService, relSvc service.RelationshipService, contentSvc service.ContentService, feedSvc service.FeedService) *Handler {
	return &Handler{authSvc: authSvc, relSvc: relSvc, contentSvc: contentSvc, feedSvc: feedSvc}
}

// fail 服务层错误到 HTTP 状态码的唯一翻译点
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownUser), errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrDuplicateFollow),
		errors.Is(err, service.ErrDuplicateBlock),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrDuplicateUser):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrBlockSelf),
		errors.Is(err, service.ErrInvalidRating):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
