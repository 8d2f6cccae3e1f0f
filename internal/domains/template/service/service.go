package service

import (
	"context"
	"fmt"

	mediaModel "agromap-backend/internal/domains/media/model"
	mediaService "agromap-backend/internal/domains/media/service"
	"agromap-backend/internal/domains/template/model"
	"agromap-backend/internal/domains/template/repository"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type templateService struct {
	repo     repository.Repository
	uploader mediaService.Uploader
	cleaner  mediaService.Cleaner
}

// NewTemplateService - Constructor with DI
func NewTemplateService(repo repository.Repository, uploader mediaService.Uploader, cleaner mediaService.Cleaner) ServiceInterface {
	return &templateService{repo: repo, uploader: uploader, cleaner: cleaner}
}

// =====================================================
// READ
// =====================================================

func (s *templateService) List(ctx context.Context, filter model.ListFilter) ([]model.Template, error) {
	return s.repo.List(ctx, filter)
}

func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	return s.repo.GetByID(ctx, id)
}

// =====================================================
// WRITE
// =====================================================

// Create - Admin only; the image is optional
func (s *templateService) Create(ctx context.Context, actor authz.Actor, req model.CreateTemplateRequest, image *mediaModel.File) (*model.Template, error) {
	// Step 1: role and fields
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidTemplate.Message, err)
	}

	// Step 2: image
	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	// Step 3: insert; a missing category surfaces as a foreign key error
	t := &model.Template{
		Name:        req.Name,
		Description: req.Description,
		Image:       url,
		CategoryID:  uuid.MustParse(req.CategoryID),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.discard(ctx, url, "template create failed")
		return nil, err
	}

	log.Info().Str("template_id", t.ID.String()).Str("name", t.Name).Msg("template created")
	return s.repo.GetByID(ctx, t.ID)
}

// Update - Admin only; a new image replaces the old one, which is queued for deletion
func (s *templateService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateTemplateRequest, image *mediaModel.File) (*model.Template, error) {
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("invalid template", err)
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}
	var replaced *string
	if url != nil {
		replaced, t.Image = t.Image, url
	}

	req.Apply(t)
	if err := s.repo.Update(ctx, t); err != nil {
		s.discard(ctx, url, "template update failed")
		return nil, err
	}
	s.discard(ctx, replaced, "template image replaced")

	return s.repo.GetByID(ctx, id)
}

func (s *templateService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.CanAdminister(actor) {
		return model.ErrForbidden
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.discard(ctx, t.Image, fmt.Sprintf("template %s deleted", id))
	log.Info().Str("template_id", id.String()).Str("actor", actor.ID.String()).Msg("template deleted")
	return nil
}

// =====================================================
// IMAGE HELPERS
// =====================================================

func (s *templateService) upload(ctx context.Context, image *mediaModel.File) (*string, error) {
	if image == nil {
		return nil, nil
	}
	url, err := s.uploader.Upload(ctx, mediaModel.FolderTemplates, *image)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *templateService) discard(ctx context.Context, url *string, reason string) {
	if url == nil {
		return
	}
	mediaService.EnqueueQuietly(ctx, s.cleaner, []string{*url}, reason)
}
