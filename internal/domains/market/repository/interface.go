package repository

import (
	"context"

	"agromap-backend/internal/domains/market/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.MarketListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Market, error)
	// GetDetail loads the market with its manager and products; Status is left zero
	GetDetail(ctx context.Context, id uuid.UUID) (*model.MarketDetail, error)
	// GetIDByManager returns the id of the market run by managerID
	GetIDByManager(ctx context.Context, managerID uuid.UUID) (uuid.UUID, error)
	ExistsForManager(ctx context.Context, managerID uuid.UUID) (bool, error)

	Create(ctx context.Context, m *model.Market) error
	Update(ctx context.Context, m *model.Market) error
	// Delete removes the market (products cascade) and returns the image URLs of
	// the deleted products, read in the same transaction
	Delete(ctx context.Context, id uuid.UUID) ([]string, error)

	// Provinces returns the distinct provinces that have at least one market
	Provinces(ctx context.Context) ([]string, error)
}
