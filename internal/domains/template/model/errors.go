package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrTemplateNotFound = apperror.NotFound("template not found")
	ErrCategoryNotFound = apperror.NotFound("category not found")
	ErrDuplicateName    = apperror.Conflict("a template with that name already exists in the category")
	ErrInvalidTemplate  = apperror.Validation("name and category are required")
	ErrForbidden        = apperror.Forbidden("only administrators can manage templates")
)
