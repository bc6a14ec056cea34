package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order. The console only reads orders to
// compute dashboard figures; they are written by the storefront.
type Order struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string          `json:"user_id" gorm:"type:varchar(36);index"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Status    string          `json:"status"` // e.g., "pending", "processing", "shipped", "delivered", "cancelled"
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
}

// DashboardStats holds the figures shown on the console's landing page.
type DashboardStats struct {
	ProductCount int64           `json:"product_count"`
	OrdersToday  int64           `json:"orders_today"`
	RevenueToday decimal.Decimal `json:"revenue_today"`
}
