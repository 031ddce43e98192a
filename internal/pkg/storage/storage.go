package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("path escapes the storage root")

// FileStorage is a sink for exported workbooks, salary slips and uploaded
// documents.
type FileStorage interface {
	// Save writes the content under name and returns the stored location
	Save(ctx context.Context, content io.Reader, name string) (string, error)

	// Open retrieves a stored file
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, name string) error

	// Exists checks if a file is stored under name
	Exists(ctx context.Context, name string) (bool, error)
}
