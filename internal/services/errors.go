package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexOutOfRange is returned by ImageSet.RemoveAt for a bad position.
	ErrIndexOutOfRange = errors.New("image index out of range")
	// ErrNothingPending is returned when confirming a deletion that was never requested.
	ErrNothingPending = errors.New("no deletion pending")
	// ErrSessionNotFound is returned for unknown or closed edit sessions.
	ErrSessionNotFound = errors.New("edit session not found")
)

// ValidationError reports the first rule a product form violates.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError is the batch-level failure of an upload. Results carries the
// outcome of every file, in input order.
type UploadError struct {
	Results []UploadResult
}

func (e *UploadError) Error() string {
	failed := e.Failed()
	names := make([]string, 0, len(failed))
	for _, r := range failed {
		names = append(names, r.Filename)
	}
	return fmt.Sprintf("%d of %d uploads failed: %s", len(failed), len(e.Results), strings.Join(names, ", "))
}

// Failed returns the results of the files that were not stored.
func (e *UploadError) Failed() []UploadResult {
	var failed []UploadResult
	for _, r := range e.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

func (e *UploadError) Unwrap() []error {
	var errs []error
	for _, r := range e.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// Write steps of the catalog save sequence.
const (
	StepProduct      = "product"
	StepImagesDelete = "images.delete"
	StepImagesInsert = "images.insert"
)

// WriteError reports which step of a save failed. Steps before it stay
// committed. ProductID is empty only when a create failed before the row
// existed; otherwise saving again with it resumes the sequence.
type WriteError struct {
	Step      string
	ProductID string
	Err       error
}

func (e *WriteError) Error() string {
	if e.Step == StepProduct {
		return fmt.Sprintf("error saving product: %v", e.Err)
	}
	return fmt.Sprintf("error saving images of product %s (%s): %v", e.ProductID, e.Step, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed catalog load.
type ReadError struct {
	ID       string
	NotFound bool
	Err      error
}

func (e *ReadError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("error loading products: %v", e.Err)
	}
	if e.NotFound {
		return fmt.Sprintf("product %s not found", e.ID)
	}
	return fmt.Sprintf("error loading product %s: %v", e.ID, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// DeleteError reports a failed product deletion.
type DeleteError struct {
	ID  string
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("error deleting product %s: %v", e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
