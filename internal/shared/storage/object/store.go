package object

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned by Open when the key has no stored object.
var ErrNotExist = errors.New("object does not exist")

// Object describes a stored object in the flat namespace.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore defines the contract for the blob storage backing documents.
// Keys form a single flat namespace; listing is newest-first.
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, limit int) ([]Object, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}
