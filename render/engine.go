package render

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/glyphbox/initicon/options"
)

// Renderer produces image bytes from a resolved configuration.
type Renderer interface {
	Render(ctx context.Context, o options.Options) (Payload, error)
}

// Engine is the production Renderer: native SVG generation with optional
// font embedding and delegated PNG rasterization. Upstream failures (font
// lookup, rasterization) fail the request; there is no fallback image.
type Engine struct {
	fonts  *FontSource
	raster *Rasterizer
	ready  atomic.Bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFontSource enables @font-face embedding in emitted SVG documents.
func WithFontSource(f *FontSource) EngineOption {
	return func(e *Engine) { e.fonts = f }
}

// WithRasterizer enables PNG output through the given rasterizer client.
func WithRasterizer(r *Rasterizer) EngineOption {
	return func(e *Engine) { e.raster = r }
}

// NewEngine creates an Engine. Without options it emits bare SVG only.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Render implements Renderer.
func (e *Engine) Render(ctx context.Context, o options.Options) (Payload, error) {
	var face string
	if e.fonts != nil {
		var err error
		face, err = e.fonts.FontFaceRule(ctx, o.FontFamily, o.Bold, o.Name)
		if err != nil {
			return Payload{}, fmt.Errorf("render: font lookup: %w", err)
		}
	}

	doc := buildSVG(o, face)
	if o.Format != options.FormatPNG {
		return SVG(doc), nil
	}

	if e.raster == nil {
		return Payload{}, ErrNoRasterizer
	}
	png, err := e.raster.Rasterize(ctx, doc)
	if err != nil {
		return Payload{}, err
	}
	return PNG(png), nil
}

// Warmup performs the engine's one-time initialization: priming the font
// source so the first real request doesn't pay the CDN round trip. The
// server gates readiness on it.
func (e *Engine) Warmup(ctx context.Context) error {
	if e.fonts != nil {
		if _, err := e.fonts.FontFaceRule(ctx, options.FontSans, false, options.DefaultName); err != nil {
			return fmt.Errorf("render: warmup: %w", err)
		}
	}
	e.ready.Store(true)
	return nil
}

// Ready reports whether Warmup has completed.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}
