// Package server assembles the avatar service: the handler stack, the
// middleware chain, health probes and the metrics endpoint, behind a
// functional-options constructor. Middleware execution order is fixed by
// priority levels, not by the order options are passed.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/glyphbox/initicon/avatar"
	"github.com/glyphbox/initicon/cache"
	"github.com/glyphbox/initicon/health"
	"github.com/glyphbox/initicon/middleware"
	"github.com/glyphbox/initicon/render"
	"github.com/glyphbox/initicon/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the assembled avatar service.
type Server struct {
	addr    string
	log     *slog.Logger
	engine  *render.Engine
	handler http.Handler
	httpSrv *http.Server
}

// New creates a Server from the supplied options.
//
// Example:
//
//	srv := server.New(
//		server.WithRecovery(),
//		server.WithCacheL1(64<<20),
//		server.WithRateLimit(100, 20),
//	)
func New(opts ...Option) *Server {
	o := options{
		addr:     ":8080",
		log:      slog.Default(),
		cacheTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// When both tiers are configured, combine them into a tiered cache.
	kv := o.kv
	switch {
	case kv != nil:
	case o.l1 != nil && o.l2 != nil:
		kv = cache.NewTiered(o.l1, o.l2)
	case o.l1 != nil:
		kv = o.l1
	case o.l2 != nil:
		kv = o.l2
	}

	engine := o.engine
	renderer := o.renderer
	if renderer == nil {
		if engine == nil {
			engineOpts := []render.EngineOption{
				render.WithFontSource(render.NewFontSource(kv)),
			}
			if o.rasterizer != "" {
				engineOpts = append(engineOpts, render.WithRasterizer(render.NewRasterizer(o.rasterizer)))
			}
			engine = render.NewEngine(engineOpts...)
		}
		renderer = engine
	}

	var store *avatar.Store
	if kv != nil {
		store = avatar.NewStore(kv, o.cacheTTL, o.log)
	}
	svc := avatar.NewService(store, renderer)

	var ready func() bool
	if engine != nil {
		ready = engine.Ready
	}

	var b middleware.Builder
	if o.recovery {
		b.Add(orderRecovery, middleware.Recovery(o.log))
	}
	b.Add(orderRequestID, middleware.RequestID())
	if o.tracing != nil {
		b.Add(orderTracing, middleware.Middleware(tracing.Middleware(o.tracing)))
	}
	b.Add(orderMetrics, middleware.Metrics())
	if o.ipblock != nil {
		b.Add(orderIPBlock, middleware.IPBlock(o.ipblock))
	}
	if o.ratelimit != nil {
		b.Add(orderRateLimit, middleware.RateLimit(o.ratelimit))
	}

	hc := health.New(ready)

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/", b.Build()(avatar.NewHandler(svc, o.log)))
	r.Get("/healthz", hc.Live)
	r.Get("/readyz", hc.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return &Server{
		addr:    o.addr,
		log:     o.log,
		engine:  engine,
		handler: r,
	}
}

// Handler returns the server's HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start warms the render engine and then serves HTTP until ctx is canceled
// or the listener fails. Warmup failure aborts startup: a server that cannot
// resolve fonts would fail every request.
func (s *Server) Start(ctx context.Context) error {
	if s.engine != nil {
		if err := s.engine.Warmup(ctx); err != nil {
			return err
		}
	}

	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		errc <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown drains in-flight requests within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	if err := s.httpSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
