package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mkim/storefront-client/internal/app/model"
	apperrors "github.com/mkim/storefront-client/internal/errors"
	"github.com/mkim/storefront-client/pkg/logger"
)

// StatsGateway is the slice of the backend API for admin analytics.
type StatsGateway interface {
	TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error)
	BestRegion(ctx context.Context) (*model.RegionStats, error)
}

// UserSource exposes the logged-in user for role checks.
type UserSource interface {
	User() *model.User
}

// StatsService exposes the admin analytics dashboard data and an Excel
// export of the same.
type StatsService interface {
	TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error)
	BestRegion(ctx context.Context) (*model.RegionStats, error)
	ExportReport(ctx context.Context, path string, limit int) error
}

type statsService struct {
	gateway StatsGateway
	session UserSource
}

func NewStatsService(gateway StatsGateway, session UserSource) StatsService {
	return &statsService{
		gateway: gateway,
		session: session,
	}
}

func (s *statsService) requireAdmin() error {
	user := s.session.User()
	if user == nil {
		return apperrors.Auth(apperrors.AuthNotLoggedIn, "log in as an admin to view analytics")
	}
	if !user.IsAdmin() {
		return apperrors.Auth(apperrors.AuthAdminOnly, "analytics requires the admin role")
	}
	return nil
}

func (s *statsService) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	sellers, err := s.gateway.TopSellers(ctx, limit)
	if err != nil {
		logger.Error("Failed to fetch top sellers", err, map[string]interface{}{
			"limit": limit,
		})
		return nil, err
	}
	return sellers, nil
}

func (s *statsService) BestRegion(ctx context.Context) (*model.RegionStats, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	region, err := s.gateway.BestRegion(ctx)
	if err != nil {
		logger.Error("Failed to fetch best region", err)
		return nil, err
	}
	return region, nil
}

// ExportReport writes top sellers and best region to an .xlsx workbook.
func (s *statsService) ExportReport(ctx context.Context, path string, limit int) error {
	sellers, err := s.TopSellers(ctx, limit)
	if err != nil {
		return err
	}
	region, err := s.BestRegion(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sellersSheet = "Top Sellers"
	f.SetSheetName(f.GetSheetName(0), sellersSheet)

	headers := []string{"Product ID", "Product", "Category", "Price", "Total Sold"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sellersSheet, cell, h)
	}
	for row, seller := range sellers {
		values := []interface{}{seller.ProductID, seller.ProductName, seller.Category, seller.Price, seller.TotalSold}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sellersSheet, cell, v)
		}
	}

	const regionSheet = "Best Region"
	if _, err := f.NewSheet(regionSheet); err != nil {
		return fmt.Errorf("create region sheet: %w", err)
	}
	f.SetCellValue(regionSheet, "A1", "State")
	f.SetCellValue(regionSheet, "B1", "City")
	f.SetCellValue(regionSheet, "C1", "Orders")
	f.SetCellValue(regionSheet, "D1", "Revenue")
	if region.State != nil {
		f.SetCellValue(regionSheet, "A2", *region.State)
	}
	if region.City != nil {
		f.SetCellValue(regionSheet, "B2", *region.City)
	}
	f.SetCellValue(regionSheet, "C2", region.OrderCount)
	f.SetCellValue(regionSheet, "D2", region.TotalRevenue)

	if err := f.SaveAs(path); err != nil {
		logger.Error("Failed to save analytics report", err, map[string]interface{}{
			"path": path,
		})
		return fmt.Errorf("save analytics report: %w", err)
	}

	logger.Info("Analytics report exported", map[string]interface{}{
		"path":    path,
		"sellers": len(sellers),
	})
	return nil
}
