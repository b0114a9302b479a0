package service

import (
	"context"
	"errors"
	"io"
)

// ErrContentNotFound is returned when a key does not exist in the store.
var ErrContentNotFound = errors.New("content not found")

// StoredFile is an open handle on stored content.
type StoredFile struct {
	io.ReadCloser
	ContentType string
	Size        int64
}

// ContentStore persists uploaded files (avatars, offer images) under opaque keys.
type ContentStore interface {
	// Put stores the content under a new key derived from name and returns the key.
	Put(ctx context.Context, prefix, name string, content io.Reader) (key string, err error)

	// Open returns a reader for the content stored under key.
	Open(ctx context.Context, key string) (*StoredFile, error)

	// Delete removes the content stored under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public path a client uses to fetch key.
	URL(key string) string
}
