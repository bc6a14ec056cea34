package repositories

import (
	"context"
	"errors"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// ErrNotFound is returned when a product does not exist.
var ErrNotFound = errors.New("product not found")

// CatalogRepository defines the row-store operations the catalog needs.
// None of the methods spans more than one statement; callers sequence them.
type CatalogRepository interface {
	// CreateProduct inserts the product row only, assigning an ID if empty.
	CreateProduct(ctx context.Context, product *models.Product) error
	// UpdateProduct overwrites the mutable fields of an existing row.
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct removes the row; the store cascades its images.
	DeleteProduct(ctx context.Context, id string) error
	// DeleteImages removes every image row of a product.
	DeleteImages(ctx context.Context, productID string) error
	// InsertImages inserts all rows in one batch.
	InsertImages(ctx context.Context, images []models.Image) error
	// ListProducts returns products newest first with images ordered by display_order.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns one product with images ordered by display_order.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
}
