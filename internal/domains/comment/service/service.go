package service

import (
	"context"
	"fmt"

	"agromap-backend/internal/domains/comment/model"
	"agromap-backend/internal/domains/comment/repository"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type commentService struct {
	repo repository.Repository
}

func NewCommentService(repo repository.Repository) ServiceInterface {
	return &commentService{repo: repo}
}

func (s *commentService) ListForProduct(ctx context.Context, productID uuid.UUID, viewer *uuid.UUID) ([]model.CommentView, error) {
	comments, err := s.repo.ListByProduct(ctx, productID, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// =====================================================
// CRUD
// =====================================================

func (s *commentService) Create(ctx context.Context, actor authz.Actor, req model.CreateCommentRequest) (*model.CommentView, error) {
	// Step 1: validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("product and text are required", err)
	}

	// Step 2: product must exist
	exists, err := s.repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrProductNotFound
	}

	// Step 3: insert; the (user, product) unique key rejects a second comment
	c := &model.Comment{
		UserID:     actor.ID,
		ProductID:  req.ProductID,
		Text:       req.Text,
		Recommends: req.RecommendsOrDefault(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().Str("comment_id", c.ID.String()).Str("product_id", c.ProductID.String()).Msg("comment created")
	return s.repo.GetView(ctx, c.ID, &actor.ID)
}

func (s *commentService) Update(ctx context.Context, actor authz.Actor, commentID uuid.UUID, req model.UpdateCommentRequest) (*model.CommentView, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("invalid comment", err)
	}

	if err := s.authorize(ctx, actor, commentID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, commentID, req.Text, req.Recommends); err != nil {
		return nil, err
	}
	return s.repo.GetView(ctx, commentID, &actor.ID)
}

func (s *commentService) Delete(ctx context.Context, actor authz.Actor, commentID uuid.UUID) error {
	if err := s.authorize(ctx, actor, commentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}

	log.Info().Str("comment_id", commentID.String()).Str("actor", actor.ID.String()).Msg("comment deleted")
	return nil
}

// authorize loads the comment and checks the actor is its author or an admin
func (s *commentService) authorize(ctx context.Context, actor authz.Actor, commentID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !authz.CanModifyComment(actor, existing.UserID) {
		return model.ErrForbidden
	}
	return nil
}

// =====================================================
// LIKE LEDGER
// =====================================================

func (s *commentService) Like(ctx context.Context, actor authz.Actor, commentID uuid.UUID) (*model.CommentView, error) {
	return s.repo.Like(ctx, actor.ID, commentID)
}

func (s *commentService) Unlike(ctx context.Context, actor authz.Actor, commentID uuid.UUID) (*model.CommentView, error) {
	return s.repo.Unlike(ctx, actor.ID, commentID)
}
