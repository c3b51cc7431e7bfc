package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/litreview/internal/api/middleware"
	"github.com/d60-Lab/litreview/pkg/response"
)

// Feed 当前用户的个性化 feed
// @Summary 查询 feed
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Response{data=[]service.FeedItem}
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	items, err := h.feedSvc.BuildFeed(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, items)
}

// MyPosts 当前用户自己的帖与评
// @Summary 查询我的发布
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Response{data=[]service.FeedItem}
// @Router /api/v1/posts [get]
func (h *Handler) MyPosts(c *gin.Context) {
	items, err := h.feedSvc.UserPosts(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, items)
}
