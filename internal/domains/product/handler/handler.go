package handler

import (
	media "agromap-backend/internal/domains/media/handler"
	"agromap-backend/internal/domains/product/model"
	"agromap-backend/internal/domains/product/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ServiceInterface
}

func NewProductHandler(productService service.ServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productEnvelope struct {
	Message string               `json:"message"`
	Product *model.ProductDetail `json:"product"`
}

// List returns products, most recently updated first
// GET /api/v1/products?province=&category=&type=&status=&market=
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, products)
}

func parseFilter(c *gin.Context) (model.ListFilter, error) {
	filter := model.ListFilter{
		Province:    utils.OptionalStringQuery(c, "province"),
		ProductType: utils.OptionalStringQuery(c, "type"),
	}

	var err error
	if filter.CategoryID, err = utils.OptionalUUIDQuery(c, "category"); err != nil {
		return filter, err
	}
	if filter.MarketID, err = utils.OptionalUUIDQuery(c, "market"); err != nil {
		return filter, err
	}
	if raw := utils.OptionalStringQuery(c, "status"); raw != nil {
		status, ok := model.ParseStatus(*raw)
		if !ok {
			return filter, model.ErrInvalidStatus
		}
		filter.Status = &status
	}
	return filter, nil
}

// Get returns a product with its market, category and rating summary
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, product)
}

// GET /api/v1/products/mine
func (h *ProductHandler) Mine(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	products, err := h.productService.Mine(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, products)
}

// Create accepts JSON or multipart/form-data; at least one file under "images"
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid(model.ErrInvalidProduct.Message, err))
		return
	}
	images, err := media.FormFiles(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), actor, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, productEnvelope{Message: "product created", Product: product})
}

// Update edits a product. existingImages lists the stored images to keep.
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
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

	var req model.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}
	images, err := media.FormFiles(c, "images")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), actor, id, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, productEnvelope{Message: "product updated", Product: product})
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
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

	if err := h.productService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "product deleted")
}
