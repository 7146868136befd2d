// Package cache stores rendered layouts and documents between runs.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entries under a local directory (the CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing
//
// Keys are built by a [Keyer] from a hash of the inputs and the options that
// affect the output, so any change to either produces a new key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
