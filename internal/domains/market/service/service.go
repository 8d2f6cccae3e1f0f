package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agromap-backend/internal/domains/market/model"
	"agromap-backend/internal/domains/market/repository"
	mediaModel "agromap-backend/internal/domains/media/model"
	mediaService "agromap-backend/internal/domains/media/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Provinces always offered to clients, even before any market exists there
var defaultProvinces = []string{"Villa Clara", "Sancti Spiritus"}

type marketService struct {
	repo         repository.Repository
	cache        cache.Cache
	uploader     mediaService.Uploader
	cleaner      mediaService.Cleaner
	location     *time.Location
	provincesTTL time.Duration
	now          func() time.Time
}

func NewMarketService(
	repo repository.Repository,
	cache cache.Cache,
	uploader mediaService.Uploader,
	cleaner mediaService.Cleaner,
	location *time.Location,
	provincesTTL time.Duration,
) ServiceInterface {
	if location == nil {
		location = time.UTC
	}
	return &marketService{
		repo:         repo,
		cache:        cache,
		uploader:     uploader,
		cleaner:      cleaner,
		location:     location,
		provincesTTL: provincesTTL,
		now:          time.Now,
	}
}

// =====================================================
// READ
// =====================================================

func (s *marketService) List(ctx context.Context, filter model.ListFilter) ([]model.MarketListItem, error) {
	return s.repo.List(ctx, filter)
}

func (s *marketService) GetDetail(ctx context.Context, id uuid.UUID) (*model.MarketDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Status = s.evaluate(detail.Schedule)
	return detail, nil
}

func (s *marketService) Status(ctx context.Context, id uuid.UUID) (*model.Status, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status := s.evaluate(m.Schedule)
	return &status, nil
}

func (s *marketService) Mine(ctx context.Context, actor authz.Actor) (*model.MarketDetail, error) {
	id, err := s.repo.GetIDByManager(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, id)
}

// evaluate computes the opening status at the current time in the market time zone
func (s *marketService) evaluate(schedule *model.Schedule) model.Status {
	return model.Evaluate(schedule, s.now().In(s.location))
}

func (s *marketService) Provinces(ctx context.Context) ([]string, error) {
	var provinces []string
	if found, err := s.cache.Get(ctx, cache.KeyMarketProvince, &provinces); err != nil {
		log.Warn().Err(err).Msg("[MARKET] provinces cache read failed")
	} else if found {
		return provinces, nil
	}

	stored, err := s.repo.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	provinces = mergeProvinces(defaultProvinces, stored)

	if err := s.cache.Set(ctx, cache.KeyMarketProvince, provinces, s.provincesTTL); err != nil {
		log.Warn().Err(err).Msg("[MARKET] provinces cache write failed")
	}
	return provinces, nil
}

// mergeProvinces returns the sorted union of both lists
func mergeProvinces(defaults, stored []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(stored))
	out := make([]string, 0, len(defaults)+len(stored))
	for _, list := range [][]string{defaults, stored} {
		for _, p := range list {
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// =====================================================
// WRITE
// =====================================================

func (s *marketService) Create(ctx context.Context, actor authz.Actor, req model.CreateMarketRequest, images []mediaModel.File) (*model.MarketDetail, error) {
	// Step 1: validate
	if err := req.Normalize(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidSchedule.Message, err)
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidMarketFields.Message, err)
	}
	if req.Schedule != nil {
		if err := req.Schedule.Validate(); err != nil {
			return nil, apperror.Invalid(model.ErrInvalidSchedule.Message, err)
		}
	}

	// Step 2: role and the one-market-per-manager rule
	if !authz.CanManageMarkets(actor) {
		return nil, model.ErrForbidden
	}
	if actor.Role == authz.RoleManager {
		exists, err := s.repo.ExistsForManager(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrAlreadyHasMarket
		}
	}

	// Step 3: images
	urls, err := s.uploader.UploadAll(ctx, mediaModel.FolderMarkets, images)
	if err != nil {
		return nil, err
	}

	// Step 4: insert
	m := &model.Market{
		Name:             req.Name,
		Description:      req.Description,
		Address:          req.Address,
		Province:         req.Province,
		Municipality:     req.Municipality,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Images:           urls,
		LegalBeneficiary: req.LegalBeneficiary,
		Schedule:         req.Schedule,
		BelongsToSAS:     req.BelongsToSAS != nil && *req.BelongsToSAS,
		ManagerID:        actor.ID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		mediaService.EnqueueQuietly(ctx, s.cleaner, urls, "market create failed")
		return nil, err
	}

	s.invalidate(ctx)
	log.Info().Str("market_id", m.ID.String()).Str("manager_id", actor.ID.String()).Msg("market created")
	return s.GetDetail(ctx, m.ID)
}

func (s *marketService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.UpdateMarketRequest, images []mediaModel.File) (*model.MarketDetail, error) {
	// Step 1: validate
	if err := req.Normalize(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidSchedule.Message, err)
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("invalid market", err)
	}
	if req.Schedule != nil {
		if err := req.Schedule.Validate(); err != nil {
			return nil, apperror.Invalid(model.ErrInvalidSchedule.Message, err)
		}
	}

	// Step 2: ownership
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyMarket(actor, m.ManagerID) {
		return nil, model.ErrForbidden
	}

	// Step 3: new images replace the old set
	var replaced []string
	if len(images) > 0 {
		urls, err := s.uploader.UploadAll(ctx, mediaModel.FolderMarkets, images)
		if err != nil {
			return nil, err
		}
		replaced, m.Images = m.Images, urls
	}

	// Step 4: save
	req.Apply(m)
	if err := s.repo.Update(ctx, m); err != nil {
		if len(images) > 0 {
			mediaService.EnqueueQuietly(ctx, s.cleaner, m.Images, "market update failed")
		}
		return nil, err
	}
	mediaService.EnqueueQuietly(ctx, s.cleaner, replaced, "market images replaced")

	s.invalidate(ctx)
	return s.GetDetail(ctx, id)
}

func (s *marketService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.CanDeleteMarket(actor) {
		return model.ErrDeleteForbidden
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	productImages, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	urls := append(append([]string{}, m.Images...), productImages...)
	mediaService.EnqueueQuietly(ctx, s.cleaner, urls, fmt.Sprintf("market %s deleted", id))

	s.invalidate(ctx)
	log.Info().Str("market_id", id.String()).Str("actor", actor.ID.String()).Int("images", len(urls)).Msg("market deleted")
	return nil
}

// invalidate drops cached values derived from the market table
func (s *marketService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyMarketProvince, cache.KeyAdminStats); err != nil {
		log.Warn().Err(err).Msg("[MARKET] cache invalidation failed")
	}
}
