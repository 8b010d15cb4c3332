package server

import (
	"log/slog"
	"time"

	"github.com/glyphbox/initicon/cache"
	"github.com/glyphbox/initicon/ratelimit"
	"github.com/glyphbox/initicon/render"
	"github.com/glyphbox/initicon/security"
	"github.com/glyphbox/initicon/tracing"
)

// Middleware execution order. Lower values run first (outermost). Recovery
// is outermost so it also catches panics in other middleware.
const (
	orderRecovery  = 10
	orderRequestID = 20
	orderTracing   = 30
	orderMetrics   = 40
	orderIPBlock   = 50
	orderRateLimit = 60
)

// Option configures a Server.
type Option func(*options)

type options struct {
	addr string
	log  *slog.Logger

	kv       cache.Cache
	l1       *cache.L1
	l2       *cache.L2
	cacheTTL time.Duration

	renderer   render.Renderer
	engine     *render.Engine
	rasterizer string

	recovery  bool
	ratelimit *ratelimit.Limiter
	ipblock   *security.IPBlocker
	tracing   *tracing.Config
}

// WithAddr sets the listen address. Defaults to ":8080".
func WithAddr(addr string) Option {
	return func(o *options) { o.addr = addr }
}

// WithLogger sets the server's structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithCache uses the given store for rendered avatars.
func WithCache(kv cache.Cache) Option {
	return func(o *options) { o.kv = kv }
}

// WithCacheL1 enables an in-process cache tier bounded to maxBytes.
func WithCacheL1(maxBytes int64) Option {
	return func(o *options) {
		l1, err := cache.NewL1(maxBytes)
		if err != nil {
			// Only a non-positive size can fail construction.
			panic("server: l1 cache: " + err.Error())
		}
		o.l1 = l1
	}
}

// WithCacheL2 enables a Redis cache tier.
func WithCacheL2(addr, password string, db int) Option {
	return func(o *options) { o.l2 = cache.NewL2(addr, password, db) }
}

// WithCacheTTL sets the lifetime of cached avatars. Defaults to 24h.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

// WithRenderer replaces the default render engine.
func WithRenderer(r render.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithEngine uses a preconfigured render engine. Its warmup gates readiness.
// Prefer WithRasterizer over building an engine by hand: the default engine
// shares the server's cache for font-face memoization.
func WithEngine(e *render.Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithRasterizer enables PNG output through the rasterizer service at
// endpoint.
func WithRasterizer(endpoint string) Option {
	return func(o *options) { o.rasterizer = endpoint }
}

// WithRecovery converts handler panics into 500 responses.
func WithRecovery() Option {
	return func(o *options) { o.recovery = true }
}

// WithRateLimit rejects requests beyond rps with a burst allowance.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) { o.ratelimit = ratelimit.NewLimiter(rps, burst) }
}

// WithIPBlock filters clients through the given blocker.
func WithIPBlock(b *security.IPBlocker) Option {
	return func(o *options) { o.ipblock = b }
}

// WithTracing enables OpenTelemetry spans for every request.
func WithTracing(cfg *tracing.Config) Option {
	return func(o *options) { o.tracing = cfg }
}
