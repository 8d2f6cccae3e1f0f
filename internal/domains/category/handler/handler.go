package handler

import (
	"agromap-backend/internal/domains/category/model"
	"agromap-backend/internal/domains/category/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.ServiceInterface
}

func NewCategoryHandler(categoryService service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryEnvelope struct {
	Message  string                    `json:"message"`
	Category *model.CategoryWithCounts `json:"category"`
}

// List returns categories ordered by name. ?active=false includes inactive ones.
// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive := false
	if active := utils.OptionalBoolQuery(c, "active"); active != nil && !*active {
		includeInactive = true
	}

	categories, err := h.categoryService.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, categories)
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, category)
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, categoryEnvelope{Message: "category created", Category: category})
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
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

	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, categoryEnvelope{Message: "category updated", Category: category})
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
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

	if err := h.categoryService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "category deleted")
}
