package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrProductNotFound   = apperror.NotFound("product not found")
	ErrMarketNotFound    = apperror.NotFound("market not found")
	ErrNoMarket          = apperror.NotFound("you do not have a market")
	ErrCategoryNotFound  = apperror.NotFound("category not found")
	ErrCategoryInactive  = apperror.Validation("the selected category is not active")
	ErrImageRequired     = apperror.Validation("at least one product image is required")
	ErrInvalidStatus     = apperror.Validation("status must be AVAILABLE or UNAVAILABLE")
	ErrInvalidProduct    = apperror.Validation("name and category are required")
	ErrForbidden         = apperror.Forbidden("you do not have permission to modify this product")
	ErrForeignMarket     = apperror.Forbidden("you do not have permission to add products to this market")
	ErrMarketRequired    = apperror.Validation("market is required")
	ErrInvalidNumber     = apperror.Validation("quantity and price must be non negative numbers")
	ErrUnknownKeptImages = apperror.Validation("existingImages may only list images the product already has")
)
