package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// StatsService computes the dashboard figures.
type StatsService struct {
	catalog repositories.CatalogRepository
	orders  repositories.OrderRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(catalog repositories.CatalogRepository, orders repositories.OrderRepository) *StatsService {
	return &StatsService{
		catalog: catalog,
		orders:  orders,
	}
}

// Dashboard returns the product count and the orders and revenue since
// midnight of now's day, in now's location.
func (s *StatsService) Dashboard(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	productCount, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product count: %w", err)
	}
	ordersToday, err := s.orders.CountSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's orders: %w", err)
	}
	revenue, err := s.orders.RevenueSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's revenue: %w", err)
	}

	return &models.DashboardStats{
		ProductCount: productCount,
		OrdersToday:  ordersToday,
		RevenueToday: revenue,
	}, nil
}
