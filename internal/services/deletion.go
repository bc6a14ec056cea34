package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mubashirbm/laibix-admin/internal/metrics"
	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// DeletionConfirmer deletes products in two phases: a request that only
// records the target, and a confirmation that issues the delete. The store
// removes the product's images by cascade.
type DeletionConfirmer struct {
	repo    repositories.CatalogRepository
	events  EventPublisher
	mu      sync.Mutex
	pending string // empty when idle
}

// NewDeletionConfirmer creates an idle DeletionConfirmer. events may be nil.
func NewDeletionConfirmer(repo repositories.CatalogRepository, events EventPublisher) *DeletionConfirmer {
	return &DeletionConfirmer{repo: repo, events: events}
}

// RequestDelete marks id as pending confirmation, replacing any earlier
// request. The store is not touched.
func (d *DeletionConfirmer) RequestDelete(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = id
}

// Pending returns the product awaiting confirmation, if any.
func (d *DeletionConfirmer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.pending != ""
}

// CancelDelete returns to idle without side effects.
func (d *DeletionConfirmer) CancelDelete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = ""
}

// ConfirmDelete deletes the pending product and returns to idle whatever
// the outcome. It returns ErrNothingPending when idle and a *DeleteError
// when the store refuses. The caller is expected to re-list afterwards.
func (d *DeletionConfirmer) ConfirmDelete(ctx context.Context) error {
	d.mu.Lock()
	id := d.pending
	d.pending = ""
	d.mu.Unlock()

	if id == "" {
		return ErrNothingPending
	}

	err := d.repo.DeleteProduct(ctx, id)
	metrics.ObserveDeletion(err)
	if err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return &DeleteError{ID: id, Err: err}
	}

	publishEvent(d.events, models.CatalogEvent{
		Type:       models.EventProductDeleted,
		ProductID:  id,
		OccurredAt: time.Now(),
	})
	return nil
}

// DeletionDesk hands out one DeletionConfirmer per administrator, so that
// a confirmation only ever applies to that administrator's own request.
type DeletionDesk struct {
	repo       repositories.CatalogRepository
	events     EventPublisher
	mu         sync.Mutex
	confirmers map[string]*DeletionConfirmer
}

// NewDeletionDesk creates a DeletionDesk. events may be nil.
func NewDeletionDesk(repo repositories.CatalogRepository, events EventPublisher) *DeletionDesk {
	return &DeletionDesk{
		repo:       repo,
		events:     events,
		confirmers: make(map[string]*DeletionConfirmer),
	}
}

// For returns the confirmer owned by admin, creating it on first use.
func (d *DeletionDesk) For(admin string) *DeletionConfirmer {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.confirmers[admin]
	if !ok {
		c = NewDeletionConfirmer(d.repo, d.events)
		d.confirmers[admin] = c
	}
	return c
}
