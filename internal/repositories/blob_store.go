package repositories

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

var (
	// ErrBlobExists is returned by Put when the name is already taken.
	ErrBlobExists = errors.New("blob name already in use")
	// ErrBlobNotFound is returned by Get for unknown names.
	ErrBlobNotFound = errors.New("blob not found")
)

// BlobStore persists binary files by name and resolves their public URL.
// Put never overwrites: a taken name is rejected with ErrBlobExists.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
	Get(ctx context.Context, name string) (*models.Blob, error)
	PublicURL(name string) string
}

// MediaPath is the route prefix blobs are served from.
const MediaPath = "/media/"

func publicURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + MediaPath + url.PathEscape(name)
}
