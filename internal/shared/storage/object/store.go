package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects
// by key, such as cover-letter templates.
type ObjectStore interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
}
