package avatar

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/glyphbox/initicon/metrics"
	"github.com/glyphbox/initicon/options"
	"github.com/glyphbox/initicon/render"
	"github.com/prometheus/client_golang/prometheus"
)

// MaxNameLength is the longest display name accepted, in characters.
const MaxNameLength = 40

// Status reports whether a response was served from the avatar store.
type Status string

const (
	StatusHit  Status = "HIT"
	StatusMiss Status = "MISS"
)

// ValidationError rejects a configuration the service cannot render. It maps
// to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service generates avatars: validate, consult the store, render on a miss.
type Service struct {
	store    *Store // nil disables caching
	renderer render.Renderer
}

// NewService creates a Service. store may be nil, in which case every
// request renders.
func NewService(store *Store, renderer render.Renderer) *Service {
	return &Service{store: store, renderer: renderer}
}

// Validate rejects configurations outside the service's rendering envelope.
func Validate(o options.Options) error {
	if utf8.RuneCountInString(o.Name) > MaxNameLength {
		return &ValidationError{Reason: fmt.Sprintf("Name is too long. Max length is %d", MaxNameLength)}
	}
	if o.FontFamily == options.FontMono && containsJapanese(o.Name) {
		return &ValidationError{Reason: "Japanese characters are not supported with mono"}
	}
	return nil
}

// Generate returns the avatar for a resolved configuration. The returned
// Status is empty when caching is disabled.
func (s *Service) Generate(ctx context.Context, o options.Options) (render.Payload, Status, error) {
	if err := Validate(o); err != nil {
		return render.Payload{}, "", err
	}

	if s.store == nil {
		p, err := s.render(ctx, o)
		return p, "", err
	}

	if p, ok := s.store.Get(ctx, o); ok {
		recordLookup(true)
		return p, StatusHit, nil
	}
	recordLookup(false)

	p, err := s.render(ctx, o)
	if err != nil {
		return render.Payload{}, "", err
	}
	s.store.Put(ctx, o, p)
	return p, StatusMiss, nil
}

func (s *Service) render(ctx context.Context, o options.Options) (render.Payload, error) {
	timer := prometheus.NewTimer(metrics.RenderDuration)
	defer timer.ObserveDuration()
	return s.renderer.Render(ctx, o)
}

// containsJapanese reports whether the name carries kana or kanji, which the
// mono typeface has no glyphs for.
func containsJapanese(name string) bool {
	for _, r := range name {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
