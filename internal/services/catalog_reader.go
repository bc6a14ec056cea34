package services

import (
	"context"
	"errors"
	"log"

	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// CatalogReader loads products for the console. Nothing is cached: every
// call reads the row store, so callers re-list after each mutation.
type CatalogReader struct {
	repo repositories.CatalogRepository
}

// NewCatalogReader creates a CatalogReader.
func NewCatalogReader(repo repositories.CatalogRepository) *CatalogReader {
	return &CatalogReader{repo: repo}
}

// List returns all products newest first, each with at most its first image.
// On failure it returns an empty slice together with a *ReadError.
func (r *CatalogReader) List(ctx context.Context) ([]models.Product, error) {
	products, err := r.repo.ListProducts(ctx)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return []models.Product{}, &ReadError{Err: err}
	}
	for i := range products {
		if len(products[i].Images) > 1 {
			products[i].Images = products[i].Images[:1]
		}
	}
	return products, nil
}

// LoadOne returns a product with all its images in display order. It never
// returns a partially populated product.
func (r *CatalogReader) LoadOne(ctx context.Context, id string) (*models.Product, error) {
	product, err := r.repo.GetProduct(ctx, id)
	if err != nil {
		log.Printf("Error loading product %s: %v", id, err)
		return nil, &ReadError{ID: id, NotFound: errors.Is(err, repositories.ErrNotFound), Err: err}
	}
	return product, nil
}
