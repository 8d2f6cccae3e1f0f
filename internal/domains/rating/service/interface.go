package service

import (
	"context"

	"agromap-backend/internal/domains/rating/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	// Summarize computes average, total and the 1..5 distribution on read
	Summarize(ctx context.Context, productID uuid.UUID) (model.Summary, error)

	// Rate creates or overwrites the caller's rating of a product
	Rate(ctx context.Context, actor authz.Actor, req model.RateRequest) (*model.RatingView, error)

	GetMine(ctx context.Context, actor authz.Actor, productID uuid.UUID) (*model.RatingView, error)
	Delete(ctx context.Context, actor authz.Actor, ratingID uuid.UUID) error
}
