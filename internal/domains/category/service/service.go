package service

import (
	"context"
	"fmt"

	"agromap-backend/internal/domains/category/model"
	"agromap-backend/internal/domains/category/repository"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type categoryService struct {
	repo  repository.Repository
	cache cache.Cache
}

func NewCategoryService(repo repository.Repository, cache cache.Cache) ServiceInterface {
	return &categoryService{repo: repo, cache: cache}
}

// =====================================================
// READ
// =====================================================

func (s *categoryService) List(ctx context.Context, includeInactive bool) ([]model.CategoryWithCounts, error) {
	return s.repo.List(ctx, !includeInactive)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.CategoryWithCounts, error) {
	return s.repo.GetByID(ctx, id)
}

// =====================================================
// WRITE
// =====================================================

func (s *categoryService) Create(ctx context.Context, actor authz.Actor, req model.CreateCategoryRequest) (*model.CategoryWithCounts, error) {
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidCategory.Message, err)
	}

	c := req.ToCategory()
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	log.Info().Str("category_id", c.ID.String()).Str("name", c.Name).Msg("category created")
	return &model.CategoryWithCounts{Category: *c}, nil
}

func (s *categoryService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateCategoryRequest) (*model.CategoryWithCounts, error) {
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidCategory.Message, err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(&current.Category)
	if err := s.repo.Update(ctx, &current.Category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return current, nil
}

func (s *categoryService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.CanAdminister(actor) {
		return model.ErrForbidden
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.InUse() {
		return apperror.WithDetails(model.ErrCategoryInUse,
			fmt.Sprintf("%d products, %d templates", current.ProductCount, current.TemplateCount))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	log.Info().Str("category_id", id.String()).Str("actor", actor.ID.String()).Msg("category deleted")
	return nil
}

// invalidate drops the cached category listings
func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyAdminStats); err != nil {
		log.Warn().Err(err).Msg("[CATEGORY] cache invalidation failed")
	}
}
