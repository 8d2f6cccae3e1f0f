package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrUserNotFound            = apperror.NotFound("user not found")
	ErrUsernameTaken           = apperror.Conflict("this username is already registered")
	ErrInvalidCredentials      = apperror.Unauthorized("invalid username or password")
	ErrTooManyAttempts         = apperror.Unauthorized("too many failed attempts, try again later")
	ErrWrongPassword           = apperror.Unauthorized("current password is incorrect")
	ErrCurrentPasswordRequired = apperror.Validation("current password is required to set a new one")
	ErrInvalidRole             = apperror.Validation("role must be REGULAR, MANAGER or ADMIN")
	ErrDeleteSelf              = apperror.Validation("you cannot delete your own account")
	ErrInvalidUser             = apperror.Validation("name, username and password are required")
	ErrForbidden               = apperror.Forbidden("only administrators can manage users")
)
