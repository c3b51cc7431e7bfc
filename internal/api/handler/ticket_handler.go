package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/litreview/internal/api/middleware"
	"github.com/d60-Lab/litreview/internal/service"
	"github.com/d60-Lab/litreview/pkg/response"
)

// 表单层校验：越界直接 400，不截断（截断只属于种子工具）
type ticketRequest struct {
	Title       string `json:"title" binding:"required,max=128"`
	Description string `json:"description" binding:"max=2048"`
	ImageRef    string `json:"image_ref" binding:"omitempty,max=256"`
}

func (r ticketRequest) input() service.TicketInput {
	return service.TicketInput{Title: r.Title, Description: r.Description, ImageRef: r.ImageRef}
}

// CreateTicket 发求评帖；owner 取认证身份
// @Summary 创建 Ticket
// @Tags 内容
// @Accept json
// @Produce json
// @Param request body ticketRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/tickets [post]
func (h *Handler) CreateTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.contentSvc.CreateTicket(c.Request.Context(), middleware.CurrentUserID(c), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, t)
}

// GetTicket 帖子详情
// @Summary Ticket 详情
// @Tags 内容
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tickets/{id} [get]
func (h *Handler) GetTicket(c *gin.Context) {
	t, err := h.contentSvc.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, t)
}

// UpdateTicket 仅 owner 可改
// @Summary 更新 Ticket
// @Tags 内容
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body ticketRequest true "帖子内容"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tickets/{id} [put]
func (h *Handler) UpdateTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.contentSvc.UpdateTicket(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, t)
}

// DeleteTicket 仅 owner 可删；级联删除其下全部 Review
// @Summary 删除 Ticket
// @Tags 内容
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tickets/{id} [delete]
func (h *Handler) DeleteTicket(c *gin.Context) {
	if err := h.contentSvc.DeleteTicket(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}
