package interfaces

import (
	"context"
	"io"
)

// ObjectStorage stores binary blobs and returns their public URL
type ObjectStorage interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
