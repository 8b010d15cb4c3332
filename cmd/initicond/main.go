// Command initicond runs the initials-avatar HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/glyphbox/initicon/config"
	"github.com/glyphbox/initicon/security"
	"github.com/glyphbox/initicon/server"
	"github.com/glyphbox/initicon/tracing"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithAddr(cfg.Addr),
		server.WithLogger(log),
		server.WithRecovery(),
		server.WithCacheTTL(cfg.CacheTTL),
	}

	if cfg.CacheEnabled {
		opts = append(opts, server.WithCacheL1(cfg.L1MaxBytes))
		if cfg.RedisAddr != "" {
			opts = append(opts, server.WithCacheL2(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
		}
	}

	if cfg.RasterizerURL != "" {
		opts = append(opts, server.WithRasterizer(cfg.RasterizerURL))
	}

	if cfg.RateLimitRPS > 0 {
		opts = append(opts, server.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	if len(cfg.BlockedCIDRs) > 0 {
		blocker, err := security.NewIPBlocker(security.Config{
			Mode:           security.DenyList,
			CIDRs:          cfg.BlockedCIDRs,
			TrustedProxies: cfg.TrustedProxies,
		})
		if err != nil {
			return err
		}
		opts = append(opts, server.WithIPBlock(blocker))
	}

	if cfg.TracingEnabled {
		exporter, err := stdouttrace.New()
		if err != nil {
			return err
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		defer func() { _ = tp.Shutdown(context.Background()) }()
		opts = append(opts, server.WithTracing(&tracing.Config{TracerProvider: tp}))
	}

	srv := server.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = srv.Start(ctx)
	switch {
	case err == nil, err == http.ErrServerClosed:
	case ctx.Err() != nil:
		log.Info("shutting down")
	default:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
