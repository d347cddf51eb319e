package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files and returns the public URL they will be
// served under.
type Storage interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, filename string) error
}
