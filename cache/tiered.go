package cache

import (
	"bytes"
	"context"
	"sync"
	"time"
)

// Tiered combines the in-process L1 with the shared Redis L2. Reads check
// L1, then L2, then the loader; writes populate both layers. Because cached
// avatars are immutable for a given key, promotion and racing writes never
// produce conflicting content.
type Tiered struct {
	l1 *L1
	l2 *L2

	mu    sync.Mutex
	loads map[string]*call
}

// NewTiered creates a two-level cache.
func NewTiered(l1 *L1, l2 *L2) *Tiered {
	return &Tiered{
		l1:    l1,
		l2:    l2,
		loads: make(map[string]*call),
	}
}

// Get checks L1, then L2. On an L2 hit the blob is promoted into L1 (with
// zero TTL, since the remaining remote TTL is unknown).
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok, err := t.l1.Get(ctx, key); err != nil || ok {
		return v, ok, err
	}
	v, ok, err := t.l2.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.l1.Set(ctx, key, v, 0)
	return v, true, nil
}

// Set writes the blob to both L2 and L1.
func (t *Tiered) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	_ = t.l2.Set(ctx, key, val, ttl)
	return t.l1.Set(ctx, key, val, ttl)
}

// GetOrSet follows the L1 → L2 → loader path, deduplicating concurrent
// loads for the same key so that simultaneous misses on one fingerprint
// share a single render.
func (t *Tiered) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if v, ok, _ := t.l1.Get(ctx, key); ok {
		return v, nil
	}

	if v, ok, _ := t.l2.Get(ctx, key); ok {
		_ = t.l1.Set(ctx, key, v, ttl)
		return bytes.Clone(v), nil
	}

	t.mu.Lock()
	if c, ok := t.loads[key]; ok {
		t.mu.Unlock()
		c.wg.Wait()
		if c.err != nil {
			return nil, c.err
		}
		return bytes.Clone(c.val), nil
	}

	c := &call{}
	c.wg.Add(1)
	t.loads[key] = c
	t.mu.Unlock()

	c.val, c.err = loader(ctx)
	if c.err == nil {
		_ = t.l2.Set(ctx, key, c.val, ttl)
		_ = t.l1.Set(ctx, key, c.val, ttl)
	}
	c.wg.Done()

	t.mu.Lock()
	delete(t.loads, key)
	t.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	return bytes.Clone(c.val), nil
}
