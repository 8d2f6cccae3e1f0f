package service

import (
	"context"

	"agromap-backend/internal/domains/comment/model"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	// ListForProduct returns the product's comments newest first.
	// viewer may be nil; then every ViewerHasLiked is false.
	ListForProduct(ctx context.Context, productID uuid.UUID, viewer *uuid.UUID) ([]model.CommentView, error)

	Create(ctx context.Context, actor authz.Actor, req model.CreateCommentRequest) (*model.CommentView, error)
	Update(ctx context.Context, actor authz.Actor, commentID uuid.UUID, req model.UpdateCommentRequest) (*model.CommentView, error)
	Delete(ctx context.Context, actor authz.Actor, commentID uuid.UUID) error

	Like(ctx context.Context, actor authz.Actor, commentID uuid.UUID) (*model.CommentView, error)
	Unlike(ctx context.Context, actor authz.Actor, commentID uuid.UUID) (*model.CommentView, error)
}
