package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// mutableColumns are the product columns an update may overwrite.
var mutableColumns = []string{"title", "description", "price", "sku", "stock", "tags", "is_featured", "updated_at"}

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// CreateProduct creates a new product row without touching its images.
func (r *GORMCatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates the mutable fields of an existing product, zero values
// included, and fills in the stored timestamps.
func (r *GORMCatalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select(mutableColumns).
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}

	var stored models.Product
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "updated_at").
		First(&stored, "id = ?", product.ID).Error
	if err != nil {
		return fmt.Errorf("failed to reload timestamps of product %s: %w", product.ID, err)
	}
	product.CreatedAt = stored.CreatedAt
	product.UpdatedAt = stored.UpdatedAt
	return nil
}

// DeleteProduct deletes a product by its ID. Image rows go with it through
// the foreign key's ON DELETE CASCADE.
func (r *GORMCatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteImages deletes every image row of a product. Deleting nothing is not an error.
func (r *GORMCatalogRepository) DeleteImages(ctx context.Context, productID string) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
		return fmt.Errorf("failed to delete images of product %s: %w", productID, err)
	}
	return nil
}

// InsertImages inserts image rows in a single batch.
func (r *GORMCatalogRepository) InsertImages(ctx context.Context, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.New().String()
		}
	}
	if err := r.db.WithContext(ctx).Create(&images).Error; err != nil {
		return fmt.Errorf("failed to insert images: %w", err)
	}
	return nil
}

// ListProducts retrieves all products, newest first.
func (r *GORMCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product with its images.
func (r *GORMCatalogRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// CountProducts returns the number of product rows.
func (r *GORMCatalogRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}
