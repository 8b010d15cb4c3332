package render

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glyphbox/initicon/cache"
	"github.com/glyphbox/initicon/options"
)

const fontCSS = `/* latin */
@font-face {
  font-family: 'Noto Sans JP';
  font-style: normal;
  font-weight: 400;
  src: url(https://fonts.gstatic.com/s/notosansjp/v53/abc.ttf) format('truetype');
}
`

func fontServer(t *testing.T, handler http.HandlerFunc) *FontSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := NewFontSource(nil)
	f.cssURL = srv.URL
	return f
}

func TestFontSource_ExtractsFaceRule(t *testing.T) {
	var gotUA, gotFamily, gotText string
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotFamily = r.URL.Query().Get("family")
		gotText = r.URL.Query().Get("text")
		fmt.Fprint(w, fontCSS)
	})

	rule, err := f.FontFaceRule(t.Context(), options.FontSans, false, "JS")
	if err != nil {
		t.Fatalf("FontFaceRule: %v", err)
	}

	want := "@font-face{font-family:'Noto Sans JP';font-weight:400;src:url(https://fonts.gstatic.com/s/notosansjp/v53/abc.ttf) format('truetype');}"
	if rule != want {
		t.Errorf("rule = %q", rule)
	}
	if gotUA != fontUserAgent {
		t.Errorf("user agent = %q", gotUA)
	}
	if gotFamily != "Noto Sans JP:wght@400" {
		t.Errorf("family = %q", gotFamily)
	}
	if gotText != "JS" {
		t.Errorf("text = %q", gotText)
	}
}

func TestFontSource_BoldRequestsWeight700(t *testing.T) {
	var gotFamily string
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotFamily = r.URL.Query().Get("family")
		fmt.Fprint(w, fontCSS)
	})

	if _, err := f.FontFaceRule(t.Context(), options.FontSans, true, "JS"); err != nil {
		t.Fatalf("FontFaceRule: %v", err)
	}
	if gotFamily != "Noto Sans JP:wght@700" {
		t.Errorf("family = %q", gotFamily)
	}
}

func TestFontSource_UnparsableStylesheet(t *testing.T) {
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "body { color: red }")
	})

	_, err := f.FontFaceRule(t.Context(), options.FontSans, false, "JS")
	if !errors.Is(err, ErrFontParse) {
		t.Fatalf("err = %v, want ErrFontParse", err)
	}
}

func TestFontSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, fontCSS)
	})
	f.retry.BaseDelay = 0

	if _, err := f.FontFaceRule(t.Context(), options.FontSans, false, "JS"); err != nil {
		t.Fatalf("FontFaceRule: %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Fatalf("upstream called %d times, want 3", n)
	}
}

func TestFontSource_MemoizesThroughCache(t *testing.T) {
	var calls atomic.Int32
	f := fontServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, fontCSS)
	})

	l1, err := cache.NewL1(1 << 20)
	if err != nil {
		t.Fatalf("NewL1: %v", err)
	}
	f.cache = l1

	for range 3 {
		if _, err := f.FontFaceRule(t.Context(), options.FontSans, false, "JS"); err != nil {
			t.Fatalf("FontFaceRule: %v", err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("upstream called %d times, want 1", n)
	}
}
