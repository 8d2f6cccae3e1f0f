package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrInvalidRating   = apperror.Validation("rating must be between 1 and 5 stars")
	ErrProductNotFound = apperror.NotFound("product not found")
	ErrRatingNotFound  = apperror.NotFound("rating not found")
	ErrNotRated        = apperror.NotFound("you have not rated this product")
	ErrForbidden       = apperror.Forbidden("you do not have permission to delete this rating")
)
