package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Add records an order, as the storefront would.
func (r *MockOrderRepository) Add(order models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = order
}

// CountSince counts orders created at or after since.
func (r *MockOrderRepository) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if !order.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// RevenueSince sums order totals created at or after since.
func (r *MockOrderRepository) RevenueSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, order := range r.orders {
		if !order.CreatedAt.Before(since) {
			total = total.Add(order.Total)
		}
	}
	return total, nil
}
