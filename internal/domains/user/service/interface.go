package service

import (
	"context"

	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/domains/user/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

// TokenIssuer signs access tokens; *jwt.Manager satisfies it
type TokenIssuer interface {
	GenerateToken(userID, username, role string) (string, error)
}

type ServiceInterface interface {
	// Register creates a REGULAR user and signs them in
	Register(ctx context.Context, req model.RegisterRequest, image *mediaModel.File) (*model.AuthResult, error)
	// Login locks a username out for a while after repeated failures
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error)
	Profile(ctx context.Context, actor authz.Actor) (*model.User, error)
	UpdateProfile(ctx context.Context, actor authz.Actor, req model.UpdateProfileRequest, image *mediaModel.File) (*model.User, error)

	// ===== Admin =====
	List(ctx context.Context, actor authz.Actor) ([]model.UserWithCounts, error)
	Create(ctx context.Context, actor authz.Actor, req model.CreateUserRequest, image *mediaModel.File) (*model.User, error)
	ChangeRole(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.ChangeRoleRequest) (*model.User, error)
	// Delete cascades to the user's markets, products and comments
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}
