package repository

import (
	"context"

	"agromap-backend/internal/domains/rating/model"

	"github.com/google/uuid"
)

type Repository interface {
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)

	// Upsert inserts or overwrites the (user, product) rating and returns its id
	Upsert(ctx context.Context, userID, productID uuid.UUID, stars int) (uuid.UUID, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Rating, error)
	GetView(ctx context.Context, id uuid.UUID) (*model.RatingView, error)
	GetViewByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*model.RatingView, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStars returns star value => number of ratings for the product
	CountByStars(ctx context.Context, productID uuid.UUID) (map[int]int, error)
}
