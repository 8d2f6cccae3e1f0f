package model

import "agromap-backend/internal/shared/apperror"

var (
	ErrMarketNotFound      = apperror.NotFound("market not found")
	ErrNoMarketYet         = apperror.NotFound("you have not created a market yet")
	ErrAlreadyHasMarket    = apperror.Conflict("you already have a market, a manager can only run one")
	ErrForbidden           = apperror.Forbidden("you do not have permission to edit this market")
	ErrDeleteForbidden     = apperror.Forbidden("only administrators can delete markets")
	ErrManagerNotFound     = apperror.NotFound("manager not found")
	ErrInvalidSchedule     = apperror.Validation("invalid schedule")
	ErrInvalidMarketFields = apperror.Validation("name, address, province and municipality are required")
)
