package repository

import (
	"context"

	"agromap-backend/internal/domains/template/model"

	"github.com/google/uuid"
)

type Repository interface {
	// List orders by name
	List(ctx context.Context, filter model.ListFilter) ([]model.Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	Create(ctx context.Context, t *model.Template) error
	Update(ctx context.Context, t *model.Template) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Upsert inserts or refreshes a template keyed by (name, category)
	Upsert(ctx context.Context, t *model.Template) error
}
