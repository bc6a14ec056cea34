package services

import (
	"fmt"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// ImageSet is the ordered list of images of the product being edited.
// It belongs to one editing session and is not safe for concurrent use.
type ImageSet struct {
	entries []models.ImageEntry
}

// NewImageSet returns a set seeded with the given entries, in order.
func NewImageSet(seed ...models.ImageEntry) *ImageSet {
	return &ImageSet{entries: append([]models.ImageEntry(nil), seed...)}
}

// Append adds entries to the end of the set.
func (s *ImageSet) Append(entries ...models.ImageEntry) {
	s.entries = append(s.entries, entries...)
}

// RemoveAt removes the entry at index; later entries move down by one.
func (s *ImageSet) RemoveAt(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("remove image %d of %d: %w", index, len(s.entries), ErrIndexOutOfRange)
	}
	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)
	return nil
}

// Snapshot returns a copy of the current entries.
func (s *ImageSet) Snapshot() []models.ImageEntry {
	return append([]models.ImageEntry{}, s.entries...)
}

// Len returns the number of entries.
func (s *ImageSet) Len() int {
	return len(s.entries)
}
