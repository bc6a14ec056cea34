package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
	"github.com/mubashirbm/laibix-admin/internal/services"
)

func TestStatsService_Dashboard(t *testing.T) {
	ctx := context.Background()
	catalog := repositories.NewMockCatalogRepository()
	seedProduct(t, catalog, "Gold Ring")
	seedProduct(t, catalog, "Rose Ring")

	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	orders := repositories.NewMockOrderRepository()
	orders.Add(models.Order{Total: decimal.RequireFromString("10.50"), CreatedAt: now.Add(-time.Hour)})
	orders.Add(models.Order{Total: decimal.RequireFromString("4.25"), CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)})
	orders.Add(models.Order{Total: decimal.RequireFromString("99"), CreatedAt: time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)})

	stats, err := services.NewStatsService(catalog, orders).Dashboard(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ProductCount)
	assert.Equal(t, int64(2), stats.OrdersToday)
	assert.True(t, stats.RevenueToday.Equal(decimal.RequireFromString("14.75")), stats.RevenueToday.String())
}

func TestStatsService_DashboardUsesCallerLocation(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*60*60)
	now := time.Date(2024, 3, 10, 1, 0, 0, 0, zone) // 2024-03-09 18:00 UTC
	orders := repositories.NewMockOrderRepository()
	orders.Add(models.Order{Total: decimal.NewFromInt(5), CreatedAt: time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC)})
	orders.Add(models.Order{Total: decimal.NewFromInt(7), CreatedAt: time.Date(2024, 3, 9, 16, 30, 0, 0, time.UTC)})

	stats, err := services.NewStatsService(repositories.NewMockCatalogRepository(), orders).Dashboard(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.OrdersToday)
	assert.True(t, stats.RevenueToday.Equal(decimal.NewFromInt(5)))
}

func TestStatsService_CatalogFailure(t *testing.T) {
	catalog := new(MockCatalogRepository)
	catalog.On("CountProducts", mock.Anything).Return(int64(0), errors.New("db down"))

	stats, err := services.NewStatsService(catalog, repositories.NewMockOrderRepository()).Dashboard(context.Background(), time.Now())

	assert.Nil(t, stats)
	assert.ErrorContains(t, err, "product count")
}
