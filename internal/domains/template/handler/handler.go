package handler

import (
	media "agromap-backend/internal/domains/media/handler"
	"agromap-backend/internal/domains/template/model"
	"agromap-backend/internal/domains/template/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService service.ServiceInterface
}

func NewTemplateHandler(templateService service.ServiceInterface) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type templateEnvelope struct {
	Message  string          `json:"message"`
	Template *model.Template `json:"template"`
}

// GET /api/v1/templates?category=
func (h *TemplateHandler) List(c *gin.Context) {
	categoryID, err := utils.OptionalUUIDQuery(c, "category")
	if err != nil {
		response.Error(c, err)
		return
	}

	templates, err := h.templateService.List(c.Request.Context(), model.ListFilter{CategoryID: categoryID})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, templates)
}

// GET /api/v1/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	template, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, template)
}

// Create accepts JSON or multipart/form-data with an optional "image" file
// POST /api/v1/templates
func (h *TemplateHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	var req model.CreateTemplateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid(model.ErrInvalidTemplate.Message, err))
		return
	}
	image, err := media.FormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), actor, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, templateEnvelope{Message: "template created", Template: template})
}

// PUT /api/v1/templates/:id
func (h *TemplateHandler) Update(c *gin.Context) {
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

	var req model.UpdateTemplateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}
	image, err := media.FormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), actor, id, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, templateEnvelope{Message: "template updated", Template: template})
}

// DELETE /api/v1/templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
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

	if err := h.templateService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "template deleted")
}
