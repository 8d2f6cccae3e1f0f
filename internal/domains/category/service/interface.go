package service

import (
	"context"

	"agromap-backend/internal/domains/category/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	// List returns active categories unless includeInactive is set
	List(ctx context.Context, includeInactive bool) ([]model.CategoryWithCounts, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CategoryWithCounts, error)

	Create(ctx context.Context, actor authz.Actor, req model.CreateCategoryRequest) (*model.CategoryWithCounts, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateCategoryRequest) (*model.CategoryWithCounts, error)
	// Delete refuses while products or templates reference the category
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}
