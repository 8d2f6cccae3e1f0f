package service

import (
	"context"
	"fmt"
	"time"

	"agromap-backend/internal/domains/admin/model"
	"agromap-backend/internal/domains/admin/repository"
	"agromap-backend/pkg/cache"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const productSheet = "Products"

type adminService struct {
	repo     repository.Repository
	cache    cache.Cache
	statsTTL time.Duration
}

// NewAdminService - Constructor with DI
func NewAdminService(repo repository.Repository, cache cache.Cache, statsTTL time.Duration) ServiceInterface {
	return &adminService{repo: repo, cache: cache, statsTTL: statsTTL}
}

// =====================================================
// DASHBOARD
// =====================================================

// Stats - Platform totals, cached for statsTTL
func (s *adminService) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if found, err := s.cache.Get(ctx, cache.KeyAdminStats, &stats); err != nil {
		log.Warn().Err(err).Msg("[ADMIN] stats cache read failed")
	} else if found {
		return &stats, nil
	}

	fresh, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.KeyAdminStats, fresh, s.statsTTL); err != nil {
		log.Warn().Err(err).Msg("[ADMIN] stats cache write failed")
	}
	return fresh, nil
}

// Activity loads the three recent lists concurrently
func (s *adminService) Activity(ctx context.Context) (*model.Activity, error) {
	activity := &model.Activity{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.repo.Markets(gctx, model.ActivityLimit)
		activity.RecentMarkets = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.Products(gctx, model.ActivityLimit, true)
		activity.RecentProducts = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.Comments(gctx, model.ActivityLimit)
		activity.RecentComments = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return activity, nil
}

// =====================================================
// LISTINGS
// =====================================================

func (s *adminService) Markets(ctx context.Context) ([]model.MarketRow, error) {
	return s.repo.Markets(ctx, 0)
}

func (s *adminService) Products(ctx context.Context) ([]model.ProductRow, error) {
	return s.repo.Products(ctx, 0, false)
}

func (s *adminService) Comments(ctx context.Context) ([]model.CommentRow, error) {
	return s.repo.Comments(ctx, 0)
}

// =====================================================
// EXPORT
// =====================================================

// ExportProducts - Product listing as an xlsx workbook
func (s *adminService) ExportProducts(ctx context.Context) (*excelize.File, error) {
	products, err := s.repo.Products(ctx, 0, false)
	if err != nil {
		return nil, err
	}

	f, err := buildProductsFile(products)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	log.Info().Int("rows", len(products)).Msg("[ADMIN] products exported")
	return f, nil
}

func buildProductsFile(products []model.ProductRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", productSheet); err != nil {
		return nil, err
	}

	// Row 1: header
	headers := []string{
		"ID", "Name", "Status", "Type", "Quantity", "Unit", "Price", "Price Unit",
		"Currency", "Market", "Manager", "Category", "Created At", "Updated At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(productSheet, cell, header); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(productSheet, "A1", last, style)
	}

	// Data rows from row 2
	for i, p := range products {
		row := []any{
			p.ID.String(), p.Name, p.Status, derefString(p.ProductType),
			nil, p.Unit, nil, p.PriceUnit, p.Currency,
			p.Market.Name, p.ManagerName, p.Category.Name,
			p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
		}
		if p.Quantity != nil {
			row[4] = p.Quantity.InexactFloat64()
		}
		if p.Price != nil {
			row[6] = p.Price.InexactFloat64()
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(productSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
