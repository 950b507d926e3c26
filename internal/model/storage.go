package model

import (
	"context"
	"io"
)

// Storage abstracts the object storage backend.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL returns a publicly fetchable URL for the key, or ""
	// when the backend cannot produce one.
	PublicURL(key string) string
}
