package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrCategoryNotFound = apperror.NotFound("category not found")
	ErrDuplicateName    = apperror.Conflict("a category with that name already exists")
	ErrCategoryInUse    = apperror.Validation("the category still has products or templates, deactivate it instead")
	ErrInvalidCategory  = apperror.Validation("invalid category data")
	ErrForbidden        = apperror.Forbidden("only administrators can manage categories")
)
