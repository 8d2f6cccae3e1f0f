package repository

import (
	"context"

	"agromap-backend/internal/domains/category/model"

	"github.com/google/uuid"
)

type Repository interface {
	// List orders by name; activeOnly hides deactivated categories
	List(ctx context.Context, activeOnly bool) ([]model.CategoryWithCounts, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CategoryWithCounts, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UpsertByName inserts or refreshes a category keyed by name and returns its id
	UpsertByName(ctx context.Context, name string, description *string) (uuid.UUID, error)
}
