package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderRepository defines the read-only order queries behind the dashboard.
// Orders are written by the storefront, never by the console.
type OrderRepository interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}
