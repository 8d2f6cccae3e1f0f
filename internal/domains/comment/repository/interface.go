package repository

import (
	"context"

	"agromap-backend/internal/domains/comment/model"

	"github.com/google/uuid"
)

// Repository persists comments and the like ledger.
// Like, Unlike and Delete each run in a single transaction.
type Repository interface {
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)

	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	GetView(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.CommentView, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, viewer *uuid.UUID) ([]model.CommentView, error)
	Update(ctx context.Context, id uuid.UUID, text *string, recommends *bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Like inserts the ledger row and increments the counter
	Like(ctx context.Context, userID, commentID uuid.UUID) (*model.CommentView, error)
	// Unlike deletes the ledger row and decrements the counter, floored at zero
	Unlike(ctx context.Context, userID, commentID uuid.UUID) (*model.CommentView, error)
}
