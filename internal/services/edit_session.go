package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// EditSession is the state of one product editor: the product being edited
// (empty ProductID for a new one) and its working image set.
type EditSession struct {
	ID        string
	ProductID string
	Title     string
	Images    *ImageSet
	touched   time.Time
	mu        sync.Mutex
}

// DraftView is the serialisable state of an edit session.
type DraftView struct {
	ID        string              `json:"id"`
	ProductID string              `json:"product_id,omitempty"`
	Title     string              `json:"title"`
	Images    []models.ImageEntry `json:"images"`
}

func (s *EditSession) view() *DraftView {
	return &DraftView{
		ID:        s.ID,
		ProductID: s.ProductID,
		Title:     s.Title,
		Images:    s.Images.Snapshot(),
	}
}

// EditorService drives product editing: sessions, uploads, image removal
// and the final validate-and-save.
type EditorService struct {
	reader    *CatalogReader
	writer    *CatalogWriter
	uploader  *Uploader
	validator *Validator
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*EditSession
}

// NewEditorService creates an EditorService. Sessions untouched for longer
// than ttl are discarded; a zero ttl keeps them until closed.
func NewEditorService(reader *CatalogReader, writer *CatalogWriter, uploader *Uploader, validator *Validator, ttl time.Duration) *EditorService {
	return &EditorService{
		reader:    reader,
		writer:    writer,
		uploader:  uploader,
		validator: validator,
		ttl:       ttl,
		sessions:  make(map[string]*EditSession),
	}
}

// Open starts an edit session. For an existing product the image set is
// seeded from its stored images, in display order.
func (e *EditorService) Open(ctx context.Context, productID string) (*DraftView, error) {
	session := &EditSession{
		ID:      uuid.New().String(),
		Images:  NewImageSet(),
		touched: time.Now(),
	}
	if productID != "" {
		product, err := e.reader.LoadOne(ctx, productID)
		if err != nil {
			return nil, err
		}
		session.ProductID = product.ID
		session.Title = product.Title
		session.Images = NewImageSet(models.Entries(product.Images)...)
	}

	e.mu.Lock()
	e.expireLocked(session.touched)
	e.sessions[session.ID] = session
	e.mu.Unlock()

	return session.view(), nil
}

// Get returns the current state of a session.
func (e *EditorService) Get(id string) (*DraftView, error) {
	var view *DraftView
	err := e.with(id, func(s *EditSession) error {
		view = s.view()
		return nil
	})
	return view, err
}

// SetTitle records the title the editor currently shows. Uploads without
// their own alt text use it, which matters for a new product whose title is
// otherwise unknown until the form is submitted.
func (e *EditorService) SetTitle(id, title string) (*DraftView, error) {
	var view *DraftView
	err := e.with(id, func(s *EditSession) error {
		s.Title = strings.TrimSpace(title)
		view = s.view()
		return nil
	})
	return view, err
}

// Upload stores files and appends them to the session's images. altText
// defaults to the session's title: the stored product title when editing,
// or whatever SetTitle last recorded. A new draft with neither gets an
// empty alt text.
func (e *EditorService) Upload(ctx context.Context, id, altText string, files []FileUpload) (*DraftView, []UploadResult, error) {
	var (
		view    *DraftView
		results []UploadResult
	)
	err := e.with(id, func(s *EditSession) error {
		if altText == "" {
			altText = s.Title
		}
		var uploadErr error
		results, uploadErr = e.uploader.Upload(ctx, s.Images, altText, files)
		view = s.view()
		return uploadErr
	})
	return view, results, err
}

// RemoveImage drops the image at index from the session.
func (e *EditorService) RemoveImage(id string, index int) (*DraftView, error) {
	var view *DraftView
	err := e.with(id, func(s *EditSession) error {
		if err := s.Images.RemoveAt(index); err != nil {
			return err
		}
		view = s.view()
		return nil
	})
	return view, err
}

// Submit validates form and saves it with the session's images. The
// session is closed on success. When a create fails after the product row
// was written, the session switches to that product so that submitting
// again resumes the save instead of creating a duplicate.
func (e *EditorService) Submit(ctx context.Context, id string, form models.ProductForm) (*models.Product, error) {
	var product *models.Product
	err := e.with(id, func(s *EditSession) error {
		sub, err := e.validator.Validate(form)
		if err != nil {
			return err
		}
		s.Title = sub.Title

		product, err = e.writer.Save(ctx, sub, s.Images.Snapshot(), s.ProductID)
		if err != nil {
			var writeErr *WriteError
			if errors.As(err, &writeErr) && writeErr.ProductID != "" {
				s.ProductID = writeErr.ProductID
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Close(id)
	return product, nil
}

// Close discards a session. Closing an unknown session is a no-op.
func (e *EditorService) Close(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
}

// with runs fn while holding the session's lock.
func (e *EditorService) with(id string, fn func(s *EditSession) error) error {
	e.mu.Lock()
	session, ok := e.sessions[id]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touched = time.Now()
	return fn(session)
}

// expireLocked must be called with e.mu held.
func (e *EditorService) expireLocked(now time.Time) {
	if e.ttl <= 0 {
		return
	}
	for id, s := range e.sessions {
		if s.mu.TryLock() {
			if now.Sub(s.touched) > e.ttl {
				delete(e.sessions, id)
			}
			s.mu.Unlock()
		}
	}
}
