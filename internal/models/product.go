package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry managed from the admin console.
// A Product with an empty ID has never been persisted and owns no images.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string          `json:"title" gorm:"type:varchar(200);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	SKU         string          `json:"sku" gorm:"column:sku;type:varchar(100);not null;index"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Tags        []string        `json:"tags" gorm:"type:text;serializer:json"`
	IsFeatured  bool            `json:"is_featured" gorm:"not null;default:false"`
	Images      []Image         `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// Image is one persisted picture of a product. DisplayOrder values of a
// product's images form the range [0, n-1] after every successful save.
type Image struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID    string `json:"product_id" gorm:"type:varchar(36);not null;index"`
	URL          string `json:"url" gorm:"not null"`
	AltText      string `json:"alt_text"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`
}

// ImageEntry is an image held in memory while a product is being edited.
type ImageEntry struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

// Entries converts persisted images into editable entries, keeping their order.
func Entries(images []Image) []ImageEntry {
	entries := make([]ImageEntry, 0, len(images))
	for _, img := range images {
		entries = append(entries, ImageEntry{URL: img.URL, AltText: img.AltText})
	}
	return entries
}

// ProductForm is the raw, unvalidated input of the product editor.
type ProductForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	SKU         string `json:"sku" form:"sku"`
	Stock       string `json:"stock" form:"stock"`
	Tags        string `json:"tags" form:"tags"` // comma separated
	IsFeatured  bool   `json:"is_featured" form:"is_featured"`
}

// Submission is a validated product ready to be written to the catalog.
// It is never persisted itself.
type Submission struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Stock       int             `json:"stock"`
	Tags        []string        `json:"tags"`
	IsFeatured  bool            `json:"is_featured"`
}

// Apply copies the submitted fields onto p, leaving identity and timestamps alone.
func (s *Submission) Apply(p *Product) {
	p.Title = s.Title
	p.Description = s.Description
	p.Price = s.Price
	p.SKU = s.SKU
	p.Stock = s.Stock
	p.Tags = copyTags(s.Tags)
	p.IsFeatured = s.IsFeatured
}

// copyTags copies tags, keeping an empty list empty rather than nil so it
// is stored as [] and not null.
func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
