package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/litreview/internal/api/middleware"
	"github.com/d60-Lab/litreview/internal/service"
	"github.com/d60-Lab/litreview/pkg/response"
)

type reviewRequest struct {
	Rating   *int   `json:"rating" binding:"required,min=0,max=5"`
	Headline string `json:"headline" binding:"required,max=128"`
	Body     string `json:"body" binding:"max=8192"`
}

func (r reviewRequest) input() service.ReviewInput {
	return service.ReviewInput{Rating: *r.Rating, Headline: r.Headline, Body: r.Body}
}

type ticketWithReviewRequest struct {
	Ticket ticketRequest `json:"ticket" binding:"required"`
	Review reviewRequest `json:"review" binding:"required"`
}

// CreateReview 评一个已有 Ticket
// @Summary 创建 Review
// @Tags 内容
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body reviewRequest true "评价内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/tickets/{id}/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rv, err := h.contentSvc.CreateReview(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, rv)
}

// CreateTicketWithReview 一次请求建帖并自评，事务内全或无
// @Summary 创建 Ticket + Review
// @Tags 内容
// @Accept json
// @Produce json
// @Param request body ticketWithReviewRequest true "帖子与评价"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/reviews [post]
func (h *Handler) CreateTicketWithReview(c *gin.Context) {
	var req ticketWithReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, rv, err := h.contentSvc.CreateTicketWithReview(c.Request.Context(), middleware.CurrentUserID(c), req.Ticket.input(), req.Review.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"ticket": t, "review": rv})
}

// UpdateReview 仅 owner 可改
// @Summary 更新 Review
// @Tags 内容
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body reviewRequest true "评价内容"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reviews/{id} [put]
func (h *Handler) UpdateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rv, err := h.contentSvc.UpdateReview(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, rv)
}

// DeleteReview 仅 owner 可删
// @Summary 删除 Review
// @Tags 内容
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	if err := h.contentSvc.DeleteReview(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}
