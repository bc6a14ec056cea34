package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// GORMBlobStore keeps uploaded files in a database table next to the catalog.
type GORMBlobStore struct {
	db      *gorm.DB
	baseURL string
}

// NewGORMBlobStore creates a blob store whose URLs are rooted at baseURL.
func NewGORMBlobStore(db *gorm.DB, baseURL string) *GORMBlobStore {
	return &GORMBlobStore{db: db, baseURL: baseURL}
}

// Put stores data under name. An existing row with the same name is left
// untouched and ErrBlobExists is returned.
func (s *GORMBlobStore) Put(ctx context.Context, name, contentType string, data []byte) error {
	blob := models.Blob{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&blob)
	if res.Error != nil {
		return fmt.Errorf("failed to store blob %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blob %s: %w", name, ErrBlobExists)
	}
	return nil
}

// Get loads a blob with its content.
func (s *GORMBlobStore) Get(ctx context.Context, name string) (*models.Blob, error) {
	var blob models.Blob
	if err := s.db.WithContext(ctx).First(&blob, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blob %s: %w", name, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to get blob %s: %w", name, err)
	}
	return &blob, nil
}

// PublicURL returns the URL the blob is served from.
func (s *GORMBlobStore) PublicURL(name string) string {
	return publicURL(s.baseURL, name)
}
