package handler

import (
	"agromap-backend/internal/domains/market/model"
	"agromap-backend/internal/domains/market/service"
	media "agromap-backend/internal/domains/media/handler"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	marketService service.ServiceInterface
}

func NewMarketHandler(marketService service.ServiceInterface) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

type marketEnvelope struct {
	Message string              `json:"message"`
	Market  *model.MarketDetail `json:"market"`
}

// List returns all markets, newest first
// GET /api/v1/markets?province=&municipality=
func (h *MarketHandler) List(c *gin.Context) {
	filter := model.ListFilter{
		Province:     utils.OptionalStringQuery(c, "province"),
		Municipality: utils.OptionalStringQuery(c, "municipality"),
	}

	markets, err := h.marketService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, markets)
}

// GET /api/v1/markets/provinces
func (h *MarketHandler) Provinces(c *gin.Context) {
	provinces, err := h.marketService.Provinces(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, provinces)
}

// Get returns a market with its products and current opening status
// GET /api/v1/markets/:id
func (h *MarketHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	market, err := h.marketService.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, market)
}

// GET /api/v1/markets/:id/status
func (h *MarketHandler) Status(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.marketService.Status(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, status)
}

// Mine returns the caller's own market
// GET /api/v1/markets/mine
func (h *MarketHandler) Mine(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	market, err := h.marketService.Mine(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, market)
}

// Create accepts JSON or multipart/form-data with files under "images"
// POST /api/v1/markets
func (h *MarketHandler) Create(c *gin.Context) {
	// Step 1: caller
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	// Step 2: fields and files
	var req model.CreateMarketRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid(model.ErrInvalidMarketFields.Message, err))
		return
	}
	images, err := media.FormFiles(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}

	// Step 3: service
	market, err := h.marketService.Create(c.Request.Context(), actor, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, marketEnvelope{Message: "market created", Market: market})
}

// Update edits a market; owner or admin. New images replace the old set.
// PUT /api/v1/markets/:id
func (h *MarketHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req model.UpdateMarketRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}
	images, err := media.FormFiles(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}

	market, err := h.marketService.Update(c.Request.Context(), actor, id, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, marketEnvelope{Message: "market updated", Market: market})
}

// Delete removes a market with its products; admin only
// DELETE /api/v1/markets/:id
func (h *MarketHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.marketService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "market deleted")
}
