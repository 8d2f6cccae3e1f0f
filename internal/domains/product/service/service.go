package service

import (
	"context"
	"fmt"

	mediaModel "agromap-backend/internal/domains/media/model"
	mediaService "agromap-backend/internal/domains/media/service"
	"agromap-backend/internal/domains/product/model"
	"agromap-backend/internal/domains/product/repository"
	ratingModel "agromap-backend/internal/domains/rating/model"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RatingSummarizer is the slice of the rating service the product page needs
type RatingSummarizer interface {
	Summarize(ctx context.Context, productID uuid.UUID) (ratingModel.Summary, error)
}

type productService struct {
	repo     repository.Repository
	ratings  RatingSummarizer
	cache    cache.Cache
	uploader mediaService.Uploader
	cleaner  mediaService.Cleaner
}

func NewProductService(
	repo repository.Repository,
	ratings RatingSummarizer,
	cache cache.Cache,
	uploader mediaService.Uploader,
	cleaner mediaService.Cleaner,
) ServiceInterface {
	return &productService{
		repo:     repo,
		ratings:  ratings,
		cache:    cache,
		uploader: uploader,
		cleaner:  cleaner,
	}
}

// =====================================================
// READ
// =====================================================

func (s *productService) List(ctx context.Context, filter model.ListFilter) ([]model.ProductListItem, error) {
	return s.repo.List(ctx, filter)
}

func (s *productService) GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.ratings.Summarize(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ratings: %w", err)
	}
	detail.Ratings = summary
	return detail, nil
}

func (s *productService) Mine(ctx context.Context, actor authz.Actor) ([]model.ProductListItem, error) {
	marketID, err := s.repo.MarketOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, model.ListFilter{MarketID: &marketID})
}

// =====================================================
// WRITE
// =====================================================

func (s *productService) Create(ctx context.Context, actor authz.Actor, req model.CreateProductRequest, images []mediaModel.File) (*model.ProductDetail, error) {
	// Step 1: validate
	if err := req.Normalize(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidNumber.Message, err)
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidProduct.Message, err)
	}
	status, ok := model.ParseStatus(req.Status)
	if !ok {
		return nil, model.ErrInvalidStatus
	}
	if len(images) == 0 {
		return nil, model.ErrImageRequired
	}

	// Step 2: category must exist and be active
	categoryID := *model.ParseID(req.CategoryID)
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	// Step 3: target market; managers may only add to their own
	marketID, err := s.resolveMarket(ctx, actor, req.MarketID)
	if err != nil {
		return nil, err
	}

	// Step 4: images
	urls, err := s.uploader.UploadAll(ctx, mediaModel.FolderProducts, images)
	if err != nil {
		return nil, err
	}

	// Step 5: insert
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Images:      urls,
		CategoryID:  categoryID,
		ProductType: req.ProductType,
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		Currency:    model.DefaultCurrency,
		Status:      status,
		MarketID:    marketID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		mediaService.EnqueueQuietly(ctx, s.cleaner, urls, "product create failed")
		return nil, err
	}

	s.invalidate(ctx)
	log.Info().Str("product_id", p.ID.String()).Str("market_id", marketID.String()).Msg("product created")
	return s.GetDetail(ctx, p.ID)
}

func (s *productService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateProductRequest, images []mediaModel.File) (*model.ProductDetail, error) {
	// Step 1: validate
	if err := req.Normalize(); err != nil {
		return nil, apperror.Invalid("invalid product", err)
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("invalid product", err)
	}

	// Step 2: ownership through the market
	p, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Step 3: category and status
	if req.CategoryID != nil {
		categoryID := *model.ParseID(*req.CategoryID)
		if err := s.checkCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.Status != nil {
		status, ok := model.ParseStatus(*req.Status)
		if !ok || *req.Status == "" {
			return nil, model.ErrInvalidStatus
		}
		p.Status = status
	}

	// Step 4: images = kept + uploaded
	kept, err := keptImages(p.Images, req.ExistingImages)
	if err != nil {
		return nil, err
	}
	uploaded, err := s.uploader.UploadAll(ctx, mediaModel.FolderProducts, images)
	if err != nil {
		return nil, err
	}
	finalImages := append(kept, uploaded...)
	if len(finalImages) == 0 {
		return nil, model.ErrImageRequired
	}
	removed := difference(p.Images, finalImages)
	p.Images = finalImages

	// Step 5: save, then drop the images no longer referenced
	req.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		mediaService.EnqueueQuietly(ctx, s.cleaner, uploaded, "product update failed")
		return nil, err
	}
	mediaService.EnqueueQuietly(ctx, s.cleaner, removed, "product images removed")

	s.invalidate(ctx)
	return s.GetDetail(ctx, id)
}

func (s *productService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	p, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	mediaService.EnqueueQuietly(ctx, s.cleaner, p.Images, fmt.Sprintf("product %s deleted", id))
	s.invalidate(ctx)
	log.Info().Str("product_id", id.String()).Str("actor", actor.ID.String()).Msg("product deleted")
	return nil
}

// =====================================================
// HELPERS
// =====================================================

// authorize loads the product and checks the actor runs its market or is an admin
func (s *productService) authorize(ctx context.Context, actor authz.Actor, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	managerID, err := s.repo.MarketManager(ctx, p.MarketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyProduct(actor, managerID) {
		return nil, model.ErrForbidden
	}
	return p, nil
}

func (s *productService) checkCategory(ctx context.Context, categoryID uuid.UUID) error {
	active, err := s.repo.CategoryActive(ctx, categoryID)
	if err != nil {
		return err
	}
	if !active {
		return model.ErrCategoryInactive
	}
	return nil
}

func (s *productService) resolveMarket(ctx context.Context, actor authz.Actor, requested string) (uuid.UUID, error) {
	if requested == "" {
		if actor.IsAdmin() {
			return uuid.Nil, model.ErrMarketRequired
		}
		return s.repo.MarketOf(ctx, actor.ID)
	}

	marketID := *model.ParseID(requested)
	managerID, err := s.repo.MarketManager(ctx, marketID)
	if err != nil {
		return uuid.Nil, err
	}
	if !authz.CanModifyProduct(actor, managerID) {
		return uuid.Nil, model.ErrForeignMarket
	}
	return marketID, nil
}

func (s *productService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyAdminStats); err != nil {
		log.Warn().Err(err).Msg("[PRODUCT] cache invalidation failed")
	}
}

// keptImages returns the stored images the client asked to keep, in its order.
// nil keep means keep everything.
func keptImages(current []string, keep *[]string) ([]string, error) {
	if keep == nil {
		return append([]string{}, current...), nil
	}
	stored := make(map[string]struct{}, len(current))
	for _, u := range current {
		stored[u] = struct{}{}
	}
	out := make([]string, 0, len(*keep))
	for _, u := range *keep {
		if _, ok := stored[u]; !ok {
			return nil, model.ErrUnknownKeptImages
		}
		out = append(out, u)
	}
	return out, nil
}

// difference returns the entries of a missing from b
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, u := range b {
		inB[u] = struct{}{}
	}
	var out []string
	for _, u := range a {
		if _, ok := inB[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}
