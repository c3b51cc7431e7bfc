package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/litreview/internal/api/middleware"
	"github.com/d60-Lab/litreview/pkg/response"
)

type followRequest struct {
	Username string `json:"username" binding:"required"`
}

// Follow 关注某个 handle
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "被关注者 handle"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	edge, err := h.relSvc.Follow(c.Request.Context(), middleware.CurrentUserID(c), req.Username)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"id": edge.ID, "followee_id": edge.FolloweeID})
}

// Unfollow 按边 id 取消关注；只能删自己的边
// @Summary 取消关注
// @Tags 关系链
// @Param id path string true "关注边ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/follow/{id} [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	if err := h.relSvc.Unfollow(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// BlockUser 屏蔽某个 handle
// @Summary 屏蔽用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "被屏蔽者 handle"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/relations/block [post]
func (h *Handler) BlockUser(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	edge, err := h.relSvc.Block(c.Request.Context(), middleware.CurrentUserID(c), req.Username)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"id": edge.ID, "blocked_id": edge.BlockedID})
}

// UnblockUser 按边 id 解除屏蔽
// @Summary 解除屏蔽
// @Tags 关系链
// @Param id path string true "屏蔽边ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/block/{id} [delete]
func (h *Handler) UnblockUser(c *gin.Context) {
	if err := h.relSvc.Unblock(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFollowing 当前用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.relSvc.ListFollowing(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowers 当前用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.relSvc.ListFollowers(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListBlocked 当前用户屏蔽的人
// @Summary 查询屏蔽列表
// @Tags 关系链
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/blocked [get]
func (h *Handler) ListBlocked(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.relSvc.ListBlocked(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
