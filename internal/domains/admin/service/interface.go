package service

import (
	"context"

	"agromap-backend/internal/domains/admin/model"

	"github.com/xuri/excelize/v2"
)

type ServiceInterface interface {
	// Stats is served from cache; writes elsewhere invalidate it
	Stats(ctx context.Context) (*model.Stats, error)
	Activity(ctx context.Context) (*model.Activity, error)
	Markets(ctx context.Context) ([]model.MarketRow, error)
	Products(ctx context.Context) ([]model.ProductRow, error)
	Comments(ctx context.Context) ([]model.CommentRow, error)
	ExportProducts(ctx context.Context) (*excelize.File, error)
}
