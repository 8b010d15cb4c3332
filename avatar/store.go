// Package avatar is the application layer: it validates resolved
// configurations, consults the rendered-image cache, and drives the renderer
// on misses. The HTTP handler that fronts it also lives here.
package avatar

import (
	"context"
	"log/slog"
	"time"

	"github.com/glyphbox/initicon/cache"
	"github.com/glyphbox/initicon/metrics"
	"github.com/glyphbox/initicon/options"
	"github.com/glyphbox/initicon/render"
)

// Store keeps rendered avatars keyed by their configuration fingerprint.
// Backend failures and undecodable entries count as misses; the cache never
// takes a request down.
type Store struct {
	kv  cache.Cache
	ttl time.Duration
	log *slog.Logger
}

// NewStore wraps kv as an avatar store with the given entry TTL.
func NewStore(kv cache.Cache, ttl time.Duration, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, ttl: ttl, log: log}
}

// TTL returns the store's entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get looks up the rendered avatar for a configuration. The payload format
// is recovered from the configuration itself, never inferred from the stored
// bytes.
func (s *Store) Get(ctx context.Context, o options.Options) (render.Payload, bool) {
	key := options.Fingerprint(o)
	blob, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return render.Payload{}, false
	}

	p, err := render.Decode(o.Format, blob)
	if err != nil {
		// A corrupt entry is unusable; treat it as a miss and re-render.
		s.log.WarnContext(ctx, "discarding corrupt cache entry", "key", key, "error", err)
		return render.Payload{}, false
	}
	return p, true
}

// Put stores a rendered avatar. Write failures are logged and swallowed; the
// response has already been produced.
func (s *Store) Put(ctx context.Context, o options.Options, p render.Payload) {
	key := options.Fingerprint(o)
	if err := s.kv.Set(ctx, key, p.Encode(), s.ttl); err != nil {
		s.log.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func recordLookup(hit bool) {
	if hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
}
