// Package cache stores archive inspection results between runs.
//
// Reading the member list and manifest of a large archive means opening and
// scanning its central directory. When the same tree is processed again the
// results are served from here instead. Only raw inspection data is cached;
// coordinate records are rebuilt on every run.
//
// Two backends exist: [FileCache] for CLI use and [NullCache] when caching is
// disabled.
package cache

import (
	"context"
	"time"
)

// TTLInspection is how long an archive inspection stays valid. Entries are
// keyed by path, size and modification time, so a changed archive misses
// regardless of age.
const TTLInspection = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored data and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
