package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/repository"
)

// analyticsService implements AnalyticsService
type analyticsService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) AnalyticsService {
	return &analyticsService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Overview returns store-wide totals
func (s *analyticsService) Overview(ctx context.Context) (*dto.AnalyticsOverview, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	totalSales, totalAmountCents, err := s.orderRepo.SalesSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales: %w", err)
	}

	return &dto.AnalyticsOverview{
		TotalUsers:       totalUsers,
		TotalProducts:    totalProducts,
		TotalSales:       totalSales,
		TotalSalesAmount: float64(totalAmountCents) / 100,
	}, nil
}

// DailySales returns one point per calendar day between start and end,
// zero-filled for days without orders.
func (s *analyticsService) DailySales(ctx context.Context, start, end time.Time) ([]dto.DailySalesPoint, error) {
	sales, err := s.orderRepo.DailySales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily sales: %w", err)
	}

	var points []dto.DailySalesPoint
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		row := sales[key]
		points = append(points, dto.DailySalesPoint{
			Date:    key,
			Sales:   row.Orders,
			Revenue: float64(row.RevenueCents) / 100,
		})
	}

	return points, nil
}
