package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// MediaHandler serves stored images at their public URL.
type MediaHandler struct {
	blobs repositories.BlobStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(blobs repositories.BlobStore) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// RegisterRoutes registers the media route. It must stay public: image
// URLs are embedded in storefront pages.
func (h *MediaHandler) RegisterRoutes(router fiber.Router) {
	router.Get(repositories.MediaPath+":name", h.HandleGetMedia)
}

// HandleGetMedia writes the blob's bytes with its stored content type.
func (h *MediaHandler) HandleGetMedia(c *fiber.Ctx) error {
	blob, err := h.blobs.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		if errors.Is(err, repositories.ErrBlobNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return respondError(c, err, "Could not load image")
	}
	c.Set(fiber.HeaderContentType, blob.ContentType)
	// Names are never reused, so content never changes.
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(blob.Data)
}
