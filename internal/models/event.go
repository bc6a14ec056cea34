package models

import "time"

// Catalog event types published after a successful mutation.
const (
	EventProductSaved   = "product.saved"
	EventProductDeleted = "product.deleted"
)

// CatalogEvent notifies downstream consumers (storefront caches, search
// indexers) that a product changed.
type CatalogEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	ImageCount int       `json:"image_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
