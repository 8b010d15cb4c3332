// Package config loads the server configuration from the environment. A
// local .env file is honored when present; every variable carries the
// INITICON_ prefix.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the avatar server.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// ShutdownTimeout bounds graceful shutdown on termination.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// CacheEnabled toggles the rendered-avatar cache.
	CacheEnabled bool `env:"CACHE_ENABLED" envDefault:"true"`
	// CacheTTL is the lifetime of cached avatars.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	// L1MaxBytes bounds the in-process cache tier.
	L1MaxBytes int64 `env:"L1_MAX_BYTES" envDefault:"67108864"`

	// RedisAddr enables the Redis cache tier when non-empty.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// RasterizerURL enables PNG output when non-empty.
	RasterizerURL string `env:"RASTERIZER_URL"`

	// RateLimitRPS enables global rate limiting when positive.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// BlockedCIDRs denies matching clients when non-empty.
	BlockedCIDRs []string `env:"BLOCKED_CIDRS" envSeparator:","`
	// TrustedProxies marks peers whose forwarding headers are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// TracingEnabled turns on span export.
	TracingEnabled bool `env:"TRACING_ENABLED" envDefault:"false"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "INITICON_"}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
