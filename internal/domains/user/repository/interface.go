package repository

import (
	"context"

	"agromap-backend/internal/domains/user/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Update saves name, province, image and password hash
	Update(ctx context.Context, u *model.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role authz.Role) (*model.User, error)
	// Delete removes the user and everything cascading from it. It returns
	// the image URLs that no longer have an owner.
	Delete(ctx context.Context, id uuid.UUID) ([]string, error)
	// List orders newest first
	List(ctx context.Context) ([]model.UserWithCounts, error)

	// UpsertByUsername creates the user or resets its role and password
	UpsertByUsername(ctx context.Context, u *model.User) error
}
