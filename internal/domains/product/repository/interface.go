package repository

import (
	"context"

	"agromap-backend/internal/domains/product/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.ProductListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// GetDetail loads market, manager and category; Ratings is left empty
	GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error)

	// MarketManager returns the manager of marketID
	MarketManager(ctx context.Context, marketID uuid.UUID) (uuid.UUID, error)
	// MarketOf returns the market run by managerID
	MarketOf(ctx context.Context, managerID uuid.UUID) (uuid.UUID, error)
	// CategoryActive reports whether the category is active; ErrCategoryNotFound when missing
	CategoryActive(ctx context.Context, categoryID uuid.UUID) (bool, error)

	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
