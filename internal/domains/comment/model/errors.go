package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrCommentNotFound  = apperror.NotFound("comment not found")
	ErrProductNotFound  = apperror.NotFound("product not found")
	ErrDuplicateComment = apperror.Conflict("you already commented on this product, edit your existing comment instead")
	ErrAlreadyLiked     = apperror.Conflict("you already liked this comment")
	ErrNotLiked         = apperror.Conflict("you have not liked this comment")
	ErrForbidden        = apperror.Forbidden("you do not have permission to modify this comment")
	ErrUserGone         = apperror.Unauthorized("user no longer exists")
)
