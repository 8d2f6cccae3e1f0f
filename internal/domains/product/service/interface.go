package service

import (
	"context"

	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/domains/product/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.ProductListItem, error)
	// GetDetail includes the rating summary
	GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error)
	// Mine lists the products of the caller's market
	Mine(ctx context.Context, actor authz.Actor) ([]model.ProductListItem, error)

	Create(ctx context.Context, actor authz.Actor, req model.CreateProductRequest, images []mediaModel.File) (*model.ProductDetail, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateProductRequest, images []mediaModel.File) (*model.ProductDetail, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}
