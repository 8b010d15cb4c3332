package render

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glyphbox/initicon/options"
)

func TestEngine_SVGWithoutCollaborators(t *testing.T) {
	e := NewEngine()

	p, err := e.Render(t.Context(), options.Resolve(nil))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if p.Format() != options.FormatSVG {
		t.Errorf("format = %q", p.Format())
	}
	doc := string(p.Bytes())
	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, ">WO</text>") {
		t.Errorf("unexpected document:\n%s", doc)
	}
	if strings.Contains(doc, "<style>") {
		t.Error("no font source configured, document must not embed a font face")
	}
}

func TestEngine_EmbedsResolvedFontFace(t *testing.T) {
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fontCSS)
	})
	e := NewEngine(WithFontSource(f))

	p, err := e.Render(t.Context(), options.Resolve(nil))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(p.Bytes()), "@font-face") {
		t.Errorf("document missing font face:\n%s", p.Bytes())
	}
}

func TestEngine_FontFailureFailsRequest(t *testing.T) {
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	e := NewEngine(WithFontSource(f))

	if _, err := e.Render(t.Context(), options.Resolve(nil)); !errors.Is(err, ErrFontUnavailable) {
		t.Fatalf("err = %v, want ErrFontUnavailable", err)
	}
}

func TestEngine_PNGRequiresRasterizer(t *testing.T) {
	e := NewEngine()
	o := options.Resolve(nil)
	o.Format = options.FormatPNG

	if _, err := e.Render(t.Context(), o); !errors.Is(err, ErrNoRasterizer) {
		t.Fatalf("err = %v, want ErrNoRasterizer", err)
	}
}

func TestEngine_PNGDelegatesToRasterizer(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	r := rasterServer(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write(png)
	})
	e := NewEngine(WithRasterizer(r))
	o := options.Resolve(nil)
	o.Format = options.FormatPNG

	p, err := e.Render(t.Context(), o)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if p.Format() != options.FormatPNG {
		t.Errorf("format = %q", p.Format())
	}
	if string(p.Bytes()) != string(png) {
		t.Errorf("bytes = % x", p.Bytes())
	}
}

func TestEngine_WarmupGatesReadiness(t *testing.T) {
	var calls atomic.Int32
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, fontCSS)
	})
	e := NewEngine(WithFontSource(f))

	if e.Ready() {
		t.Fatal("engine must not report ready before warmup")
	}
	if err := e.Warmup(t.Context()); err != nil {
		t.Fatalf("Warmup: %v", err)
	}
	if !e.Ready() {
		t.Fatal("engine must report ready after warmup")
	}
	if calls.Load() != 1 {
		t.Fatalf("warmup made %d font lookups, want 1", calls.Load())
	}
}

func TestEngine_WarmupFailureKeepsNotReady(t *testing.T) {
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	e := NewEngine(WithFontSource(f))

	if err := e.Warmup(t.Context()); err == nil {
		t.Fatal("expected warmup error")
	}
	if e.Ready() {
		t.Fatal("failed warmup must not mark the engine ready")
	}
}
