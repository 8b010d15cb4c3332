package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// L2 is a Redis-backed cache layer shared across instances. All operations
// fail soft: an unreachable Redis turns reads into misses and silently
// discards writes, so the avatar pipeline keeps rendering instead of
// erroring. The render path can always regenerate what the cache loses.
type L2 struct {
	rdb *redis.Client
}

// NewL2 creates a Redis-backed L2 cache.
func NewL2(addr, password string, db int) *L2 {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &L2{rdb: rdb}
}

// NewL2FromClient wraps an existing Redis client. The caller keeps ownership
// of the client's lifecycle.
func NewL2FromClient(rdb *redis.Client) *L2 {
	return &L2{rdb: rdb}
}

// Get retrieves a blob by key. Returns (nil, false, nil) on a miss or when
// Redis is unreachable.
func (l *L2) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := l.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		// Fail soft: treat connection errors as a miss.
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores a blob under key with the given TTL. A zero TTL means the entry
// has no automatic expiration. Errors are silently discarded (fail soft).
func (l *L2) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	_ = l.rdb.Set(ctx, key, val, ttl).Err()
	return nil
}

// GetOrSet returns the cached blob for key, loading and storing it on a
// miss. Concurrent loads are not deduplicated at this layer; the tiered
// cache handles that. Racing writers store identical content.
func (l *L2) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if v, ok, _ := l.Get(ctx, key); ok {
		return v, nil
	}
	v, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	_ = l.Set(ctx, key, v, ttl)
	return v, nil
}

// Ping checks the Redis connection.
func (l *L2) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (l *L2) Close() error {
	return l.rdb.Close()
}
