package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/glyphbox/initicon/breaker"
	"github.com/glyphbox/initicon/retry"
)

// ErrNoRasterizer is returned for PNG requests when no rasterizer endpoint
// is configured.
var ErrNoRasterizer = errors.New("render: png output requires a rasterizer endpoint")

// Rasterizer converts SVG documents to PNG via an external rasterization
// service. The service is the one upstream that can brown out under load,
// so calls run through a circuit breaker; transient failures inside a closed
// circuit are retried with backoff.
type Rasterizer struct {
	endpoint string
	client   *http.Client
	br       *breaker.Breaker
	retry    retry.Config
}

// NewRasterizer creates a client for the rasterizer service at endpoint.
func NewRasterizer(endpoint string) *Rasterizer {
	return &Rasterizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		br: breaker.New(breaker.Config{
			FailureThreshold:   5,
			OpenTimeout:        30 * time.Second,
			HalfOpenMaxSuccess: 2,
		}),
		retry: retry.Config{
			MaxAttempts: 2,
			BaseDelay:   100 * time.Millisecond,
			MaxDelay:    time.Second,
			Jitter:      0.2,
			RetryIf:     transient,
		},
	}
}

// Rasterize renders an SVG document to PNG bytes.
func (r *Rasterizer) Rasterize(ctx context.Context, svg string) ([]byte, error) {
	var png []byte
	err := r.br.Do(ctx, func(ctx context.Context) error {
		var err error
		png, err = retry.Do(ctx, r.retry, func(ctx context.Context) ([]byte, error) {
			return r.post(ctx, svg)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render: rasterize: %w", err)
	}
	return png, nil
}

func (r *Rasterizer) post(ctx context.Context, svg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(svg))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "image/svg+xml")
	req.Header.Set("Accept", "image/png")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &upstreamStatusError{url: r.endpoint, code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
