package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrInvalidImage   = apperror.Validation("invalid image, allowed types are jpeg, png, gif and webp")
	ErrImageTooLarge  = apperror.Validation("image too large")
	ErrTooManyImages  = apperror.Validation("too many images")
	ErrUploadRejected = apperror.Validation("could not read uploaded files")
)
