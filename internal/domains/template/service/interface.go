package service

import (
	"context"

	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/domains/template/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Template, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Template, error)

	// Create stores the optional image first
	Create(ctx context.Context, actor authz.Actor, req model.CreateTemplateRequest, image *mediaModel.File) (*model.Template, error)
	// Update replaces the image when a new one is sent
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateTemplateRequest, image *mediaModel.File) (*model.Template, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}
