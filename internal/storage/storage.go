package storage

import (
	"context"
	"io"
)

// Service stores uploaded image assets and removes them after their place
// or user record is gone.
type Service interface {
	// Save persists the asset under key and returns its location. The
	// location is opaque to callers; it is what gets persisted on the
	// record and passed back to Remove.
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, location string) error
}
