package service

import (
	"context"
	"fmt"

	"agromap-backend/internal/domains/rating/model"
	"agromap-backend/internal/domains/rating/repository"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type ratingService struct {
	repo repository.Repository
}

func NewRatingService(repo repository.Repository) ServiceInterface {
	return &ratingService{repo: repo}
}

// Summarize - Average and count for a product page
func (s *ratingService) Summarize(ctx context.Context, productID uuid.UUID) (model.Summary, error) {
	counts, err := s.repo.CountByStars(ctx, productID)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to summarize ratings: %w", err)
	}
	return model.NewSummary(counts), nil
}

// Rate - One rating per user and product; a second call overwrites the stars
func (s *ratingService) Rate(ctx context.Context, actor authz.Actor, req model.RateRequest) (*model.RatingView, error) {
	// Step 1: validate
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("product is required", err)
	}
	if !model.ValidStars(req.Stars) {
		return nil, model.ErrInvalidRating
	}

	// Step 2: product must exist
	exists, err := s.repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrProductNotFound
	}

	// Step 3: upsert
	id, err := s.repo.Upsert(ctx, actor.ID, req.ProductID, req.Stars)
	if err != nil {
		return nil, err
	}
	return s.repo.GetView(ctx, id)
}

func (s *ratingService) GetMine(ctx context.Context, actor authz.Actor, productID uuid.UUID) (*model.RatingView, error) {
	return s.repo.GetViewByUserAndProduct(ctx, actor.ID, productID)
}

func (s *ratingService) Delete(ctx context.Context, actor authz.Actor, ratingID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteRating(actor, existing.UserID) {
		return model.ErrForbidden
	}
	return s.repo.Delete(ctx, ratingID)
}
