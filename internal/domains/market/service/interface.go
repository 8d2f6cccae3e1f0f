package service

import (
	"context"

	"agromap-backend/internal/domains/market/model"
	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.MarketListItem, error)
	// GetDetail includes the opening status evaluated now in the configured time zone
	GetDetail(ctx context.Context, id uuid.UUID) (*model.MarketDetail, error)
	Status(ctx context.Context, id uuid.UUID) (*model.Status, error)
	Mine(ctx context.Context, actor authz.Actor) (*model.MarketDetail, error)
	Provinces(ctx context.Context) ([]string, error)

	// Create stores images first; a manager may only run one market
	Create(ctx context.Context, actor authz.Actor, req model.CreateMarketRequest, images []mediaModel.File) (*model.MarketDetail, error)
	// Update replaces all images when new ones are sent
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateMarketRequest, images []mediaModel.File) (*model.MarketDetail, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}
