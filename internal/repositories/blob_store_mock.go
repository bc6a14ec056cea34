package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// MockBlobStore is an in-memory implementation of BlobStore.
type MockBlobStore struct {
	blobs   map[string]models.Blob
	baseURL string
	mu      sync.RWMutex
}

// NewMockBlobStore creates a new instance of MockBlobStore.
func NewMockBlobStore(baseURL string) *MockBlobStore {
	return &MockBlobStore{
		blobs:   make(map[string]models.Blob),
		baseURL: baseURL,
	}
}

// Put stores a copy of data under name.
func (s *MockBlobStore) Put(_ context.Context, name, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blobs[name]; exists {
		return fmt.Errorf("blob %s: %w", name, ErrBlobExists)
	}
	s.blobs[name] = models.Blob{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        append([]byte(nil), data...),
		CreatedAt:   time.Now(),
	}
	return nil
}

// Get returns a blob by name.
func (s *MockBlobStore) Get(_ context.Context, name string) (*models.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[name]
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", name, ErrBlobNotFound)
	}
	return &blob, nil
}

// PublicURL returns the URL the blob is served from.
func (s *MockBlobStore) PublicURL(name string) string {
	return publicURL(s.baseURL, name)
}

// Len reports how many blobs are stored.
func (s *MockBlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
