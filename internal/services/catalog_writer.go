package services

import (
	"context"
	"log"
	"time"

	"github.com/mubashirbm/laibix-admin/internal/metrics"
	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// EventPublisher announces catalog changes to other systems.
type EventPublisher interface {
	PublishCatalogEvent(event models.CatalogEvent) error
}

// CatalogWriter persists submissions and their ordered images.
//
// The row store offers no transaction across statements, so a save is a
// sequence of steps, each durable on its own:
//
//	create: insert product -> insert images
//	update: update product -> delete all images -> insert images
//
// The first failing step ends the save with a *WriteError; earlier steps are
// not undone. Every step is idempotent, so calling Save again with the
// product ID from the error converges on the requested state.
type CatalogWriter struct {
	repo   repositories.CatalogRepository
	events EventPublisher
}

// NewCatalogWriter creates a CatalogWriter. events may be nil.
func NewCatalogWriter(repo repositories.CatalogRepository, events EventPublisher) *CatalogWriter {
	return &CatalogWriter{
		repo:   repo,
		events: events,
	}
}

// Save creates the product when existingID is empty and updates it otherwise.
// On success the product's images are exactly images, with display_order
// equal to their position.
func (w *CatalogWriter) Save(ctx context.Context, sub *models.Submission, images []models.ImageEntry, existingID string) (*models.Product, error) {
	// Once started the sequence runs to completion or first failure.
	ctx = context.WithoutCancel(ctx)

	product := &models.Product{ID: existingID}
	sub.Apply(product)

	path := "update"
	if existingID == "" {
		path = "create"
		err := w.repo.CreateProduct(ctx, product)
		metrics.ObserveWriteStep(path, StepProduct, err)
		if err != nil {
			log.Printf("Error creating product %q: %v", sub.Title, err)
			return nil, &WriteError{Step: StepProduct, Err: err}
		}
	} else {
		err := w.repo.UpdateProduct(ctx, product)
		metrics.ObserveWriteStep(path, StepProduct, err)
		if err != nil {
			log.Printf("Error updating product %s: %v", existingID, err)
			return nil, &WriteError{Step: StepProduct, ProductID: existingID, Err: err}
		}

		err = w.repo.DeleteImages(ctx, existingID)
		metrics.ObserveWriteStep(path, StepImagesDelete, err)
		if err != nil {
			log.Printf("Error clearing images of product %s: %v", existingID, err)
			return nil, &WriteError{Step: StepImagesDelete, ProductID: existingID, Err: err}
		}
	}

	rows := imageRows(product.ID, images)
	if len(rows) > 0 {
		err := w.repo.InsertImages(ctx, rows)
		metrics.ObserveWriteStep(path, StepImagesInsert, err)
		if err != nil {
			log.Printf("Error inserting %d images of product %s: %v", len(rows), product.ID, err)
			return nil, &WriteError{Step: StepImagesInsert, ProductID: product.ID, Err: err}
		}
	}
	product.Images = rows

	publishEvent(w.events, models.CatalogEvent{
		Type:       models.EventProductSaved,
		ProductID:  product.ID,
		ImageCount: len(rows),
		OccurredAt: time.Now(),
	})
	return product, nil
}

// imageRows numbers entries by position, starting at zero.
func imageRows(productID string, entries []models.ImageEntry) []models.Image {
	rows := make([]models.Image, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, models.Image{
			ProductID:    productID,
			URL:          e.URL,
			AltText:      e.AltText,
			DisplayOrder: i,
		})
	}
	return rows
}

// publishEvent sends event if a publisher is configured. Failures are logged
// only; the catalog change has already been committed.
func publishEvent(events EventPublisher, event models.CatalogEvent) {
	if events == nil {
		return
	}
	if err := events.PublishCatalogEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", event.Type, event.ProductID, err)
	}
}
