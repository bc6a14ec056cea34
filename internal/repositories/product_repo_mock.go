package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
// It emulates the cascading delete of image rows.
type MockCatalogRepository struct {
	products map[string]models.Product
	images   map[string][]models.Image // keyed by product ID
	mu       sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		products: make(map[string]models.Product),
		images:   make(map[string][]models.Image),
	}
}

// CreateProduct adds a new product row.
func (r *MockCatalogRepository) CreateProduct(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("failed to create product: duplicate ID %s", product.ID)
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	row := *product
	row.Tags = cloneTags(product.Tags)
	row.Images = nil
	r.products[product.ID] = row
	return nil
}

// UpdateProduct modifies the mutable fields of an existing product.
func (r *MockCatalogRepository) UpdateProduct(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	row.Title = product.Title
	row.Description = product.Description
	row.Price = product.Price
	row.SKU = product.SKU
	row.Stock = product.Stock
	row.Tags = cloneTags(product.Tags)
	row.IsFeatured = product.IsFeatured
	row.UpdatedAt = time.Now()
	r.products[product.ID] = row

	product.CreatedAt = row.CreatedAt
	product.UpdatedAt = row.UpdatedAt
	return nil
}

// DeleteProduct removes a product and, like the SQL foreign key, its images.
func (r *MockCatalogRepository) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	delete(r.images, id)
	return nil
}

// DeleteImages removes every image of a product.
func (r *MockCatalogRepository) DeleteImages(_ context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.images, productID)
	return nil
}

// InsertImages stores image rows; every row must reference an existing product.
func (r *MockCatalogRepository) InsertImages(_ context.Context, images []models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, img := range images {
		if _, ok := r.products[img.ProductID]; !ok {
			return fmt.Errorf("failed to insert images: unknown product %s", img.ProductID)
		}
	}
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.New().String()
		}
		r.images[images[i].ProductID] = append(r.images[images[i].ProductID], images[i])
	}
	return nil
}

// ListProducts returns all products, newest first.
func (r *MockCatalogRepository) ListProducts(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for id := range r.products {
		productList = append(productList, r.withImages(id))
	}
	sort.SliceStable(productList, func(i, j int) bool {
		return productList[i].CreatedAt.After(productList[j].CreatedAt)
	})
	return productList, nil
}

// GetProduct returns a product by its ID.
func (r *MockCatalogRepository) GetProduct(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.products[id]; !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product := r.withImages(id)
	return &product, nil
}

// CountProducts returns the number of stored products.
func (r *MockCatalogRepository) CountProducts(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// withImages must be called with the lock held.
func (r *MockCatalogRepository) withImages(id string) models.Product {
	product := r.products[id]
	product.Tags = cloneTags(product.Tags)
	product.Images = append([]models.Image{}, r.images[id]...)
	sort.SliceStable(product.Images, func(i, j int) bool {
		return product.Images[i].DisplayOrder < product.Images[j].DisplayOrder
	})
	return product
}

// cloneTags copies tags the way the JSON column round-trips them: nil stays
// nil and an empty list stays empty.
func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return append(make([]string, 0, len(tags)), tags...)
}
