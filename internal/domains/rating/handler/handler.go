package handler

import (
	"agromap-backend/internal/domains/rating/model"
	"agromap-backend/internal/domains/rating/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.ServiceInterface
}

func NewRatingHandler(ratingService service.ServiceInterface) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Rate creates or updates the caller's rating
// POST /api/v1/ratings
func (h *RatingHandler) Rate(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	var req model.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("product and stars are required", err))
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, rating)
}

// Stats
// GET /api/v1/ratings/by-product/:productId/stats
func (h *RatingHandler) Stats(c *gin.Context) {
	productID, err := utils.ParseUUIDParam(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.ratingService.Summarize(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, summary)
}

// Mine returns the caller's rating of a product or 404
// GET /api/v1/ratings/by-product/:productId
func (h *RatingHandler) Mine(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	productID, err := utils.ParseUUIDParam(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	rating, err := h.ratingService.GetMine(c.Request.Context(), actor, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, rating)
}

// Delete
// DELETE /api/v1/ratings/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	ratingID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), actor, ratingID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "rating deleted")
}
