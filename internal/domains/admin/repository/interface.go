package repository

import (
	"context"

	"agromap-backend/internal/domains/admin/model"
)

// Repository reads across every domain table for the dashboard.
// A limit of 0 means no limit.
type Repository interface {
	Stats(ctx context.Context) (*model.Stats, error)
	Markets(ctx context.Context, limit int) ([]model.MarketRow, error)
	// Products orders by last update unless newest is set
	Products(ctx context.Context, limit int, newest bool) ([]model.ProductRow, error)
	Comments(ctx context.Context, limit int) ([]model.CommentRow, error)
}
