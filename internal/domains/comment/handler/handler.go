package handler

import (
	"agromap-backend/internal/domains/comment/model"
	"agromap-backend/internal/domains/comment/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.ServiceInterface
}

func NewCommentHandler(commentService service.ServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// commentEnvelope is the body of every mutating comment endpoint
type commentEnvelope struct {
	Message string             `json:"message"`
	Comment *model.CommentView `json:"comment"`
}

// ListByProduct returns a product's comments, flagged with the viewer's likes
// GET /api/v1/comments/by-product/:productId
func (h *CommentHandler) ListByProduct(c *gin.Context) {
	productID, err := utils.ParseUUIDParam(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := h.commentService.ListForProduct(c.Request.Context(), productID, middleware.ViewerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, comments)
}

// Create adds the caller's comment on a product
// POST /api/v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	// Step 1: caller
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	// Step 2: body
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("product and text are required", err))
		return
	}

	// Step 3: service
	comment, err := h.commentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, commentEnvelope{Message: "comment created", Comment: comment})
}

// Update edits a comment; author or admin only
// PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	commentID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), actor, commentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, commentEnvelope{Message: "comment updated", Comment: comment})
}

// Delete removes a comment and its likes; author or admin only
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	commentID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), actor, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "comment deleted")
}

// Like
// POST /api/v1/comments/:id/like
func (h *CommentHandler) Like(c *gin.Context) {
	h.toggle(c, true)
}

// Unlike
// POST /api/v1/comments/:id/unlike
func (h *CommentHandler) Unlike(c *gin.Context) {
	h.toggle(c, false)
}

func (h *CommentHandler) toggle(c *gin.Context, like bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	commentID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var (
		comment *model.CommentView
		message string
	)
	if like {
		comment, err = h.commentService.Like(c.Request.Context(), actor, commentID)
		message = "like added"
	} else {
		comment, err = h.commentService.Unlike(c.Request.Context(), actor, commentID)
		message = "like removed"
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, commentEnvelope{Message: message, Comment: comment})
}
