package storage

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by writes that would grow storage past its
// configured quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV describes a flat key-value storage.
type KV interface {
	// Get returns the value stored under key, or (nil, nil) if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites key.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany writes all pairs atomically: either all are stored or none.
	SetMany(ctx context.Context, pairs map[string][]byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored pair.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}
