// Package cache provides the key-value blob store behind the avatar cache:
// an in-process L1 backed by ristretto, a Redis-backed L2, and a tiered
// combination of the two. Values are opaque byte blobs keyed by the
// configuration fingerprint; entries are immutable once written, so
// concurrent writers racing on the same key are harmless.
package cache

import (
	"context"
	"time"
)

// Cache is the store contract the avatar layer depends on. The cache is an
// optimization, never authoritative storage: implementations degrade to
// misses rather than surfacing backend failures.
type Cache interface {
	// Get retrieves a blob by key. The boolean indicates a cache hit; false
	// means never written, expired, or backend unavailable.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a blob under key with the given TTL. A zero TTL means the
	// entry has no automatic expiration.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// GetOrSet returns the cached blob for key. On a miss it calls loader,
	// stores the result, and returns it. Implementations deduplicate
	// concurrent loads for the same key.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) ([]byte, error)) ([]byte, error)
}
