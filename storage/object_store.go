package storage

import (
	"context"
	"io"
)

// StoredObject is what the bucket reports back after a write.
type StoredObject struct {
	Key  string
	URL  string
	ETag string
}

// ObjectStore is the slice of an S3-compatible bucket that schedule publishing
// needs. Keys are bucket-relative; PublicURL maps a key to its CDN address.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (*StoredObject, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}
