package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mubashirbm/laibix-admin/internal/metrics"
	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// maxNameAttempts bounds how often a colliding blob name is regenerated.
const maxNameAttempts = 3

var (
	// ErrNotImage is reported for files whose content is not an image.
	ErrNotImage = errors.New("file is not an image")
	// ErrEmptyFile is reported for zero-length files.
	ErrEmptyFile = errors.New("file is empty")
)

// FileUpload is one file received from the product editor.
type FileUpload struct {
	Filename string
	Data     []byte
}

// UploadResult is the outcome of a single file.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
	Err      error  `json:"-"`
}

// Uploader stores image files in the blob store and adds them to an ImageSet.
type Uploader struct {
	blobs       repositories.BlobStore
	concurrency int
}

// NewUploader creates an Uploader running at most concurrency uploads at once.
func NewUploader(blobs repositories.BlobStore, concurrency int) *Uploader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Uploader{
		blobs:       blobs,
		concurrency: concurrency,
	}
}

// Upload stores every file independently and appends the stored ones to set
// in input order, whatever order the uploads finish in. A failed file does
// not undo the others. If any file failed the returned error is an
// *UploadError; the results slice is returned either way.
func (u *Uploader) Upload(ctx context.Context, set *ImageSet, altText string, files []FileUpload) ([]UploadResult, error) {
	results := make([]UploadResult, len(files))

	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, file := range files {
		g.Go(func() error {
			url, err := u.store(ctx, file)
			metrics.ObserveUpload(err)
			results[i] = UploadResult{Filename: file.Filename, URL: url, Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			// Per-file failures are collected in results, never returned.
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Printf("Upload of %q failed: %v", r.Filename, r.Err)
			continue
		}
		set.Append(models.ImageEntry{URL: r.URL, AltText: altText})
	}

	if failed > 0 {
		return results, &UploadError{Results: results}
	}
	return results, nil
}

func (u *Uploader) store(ctx context.Context, file FileUpload) (string, error) {
	if len(file.Data) == 0 {
		return "", ErrEmptyFile
	}
	mtype := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w (detected %s)", ErrNotImage, mtype.String())
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := uuid.New().String() + mtype.Extension()
		err := u.blobs.Put(ctx, name, mtype.String(), file.Data)
		if errors.Is(err, repositories.ErrBlobExists) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to store image: %w", err)
		}
		return u.blobs.PublicURL(name), nil
	}
	return "", fmt.Errorf("failed to store image after %d attempts: %w", maxNameAttempts, repositories.ErrBlobExists)
}
