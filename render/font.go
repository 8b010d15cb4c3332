package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/glyphbox/initicon/cache"
	"github.com/glyphbox/initicon/options"
	"github.com/glyphbox/initicon/retry"
)

// The fonts CDN serves different formats depending on the requesting agent;
// this agent is pinned to one that receives plain truetype/opentype URLs.
const fontUserAgent = "Mozilla/5.0 (Macintosh; U; Intel Mac OS X 10_6_8; de-at) AppleWebKit/533.21.1 (KHTML, like Gecko) Version/5.0.5 Safari/533.21.1"

const defaultFontCSSURL = "https://fonts.googleapis.com/css2"

// fontSrcPattern extracts the typeface URL from the CSS stylesheet returned
// by the fonts service.
var fontSrcPattern = regexp.MustCompile(`src: url\(([^)]+)\) format\('(opentype|truetype)'\)`)

var (
	ErrFontUnavailable = errors.New("render: font stylesheet fetch failed")
	ErrFontParse       = errors.New("render: no typeface url in font stylesheet")
)

// upstreamStatusError reports a non-2xx response from an upstream service.
type upstreamStatusError struct {
	url  string
	code int
}

func (e *upstreamStatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.url, e.code)
}

// transient classifies upstream errors worth retrying: server-side failures,
// throttling and transport-level errors. Client errors are final.
func transient(err error) bool {
	var se *upstreamStatusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError || se.code == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// FontSource resolves @font-face rules for avatar text via the Google Fonts
// css2 endpoint, scoped to the exact glyphs being rendered. Lookups are
// memoized through the blob cache so repeated names don't re-hit the CDN.
type FontSource struct {
	client *http.Client
	cssURL string
	cache  cache.Cache
	ttl    time.Duration
	retry  retry.Config
}

// NewFontSource creates a FontSource. kv may be nil, in which case every
// lookup goes to the network.
func NewFontSource(kv cache.Cache) *FontSource {
	return &FontSource{
		client: &http.Client{Timeout: 10 * time.Second},
		cssURL: defaultFontCSSURL,
		cache:  kv,
		ttl:    24 * time.Hour,
		retry: retry.Config{
			MaxAttempts: 3,
			BaseDelay:   200 * time.Millisecond,
			MaxDelay:    2 * time.Second,
			Jitter:      0.2,
			RetryIf:     transient,
		},
	}
}

// FontFaceRule returns a @font-face CSS rule for the given family and
// weight, restricted to the code points of text.
func (f *FontSource) FontFaceRule(ctx context.Context, family options.FontFamily, bold bool, text string) (string, error) {
	weight := 400
	if bold {
		weight = 700
	}

	load := func(ctx context.Context) ([]byte, error) {
		rule, err := retry.Do(ctx, f.retry, func(ctx context.Context) (string, error) {
			return f.fetchRule(ctx, family, weight, text)
		})
		if err != nil {
			return nil, err
		}
		return []byte(rule), nil
	}

	if f.cache == nil {
		rule, err := load(ctx)
		if err != nil {
			return "", err
		}
		return string(rule), nil
	}

	key := fmt.Sprintf("font:%s:%d:%s", family, weight, text)
	rule, err := f.cache.GetOrSet(ctx, key, f.ttl, load)
	if err != nil {
		return "", err
	}
	return string(rule), nil
}

// fetchRule requests the stylesheet and extracts the typeface source.
func (f *FontSource) fetchRule(ctx context.Context, family options.FontFamily, weight int, text string) (string, error) {
	q := url.Values{}
	q.Set("family", fmt.Sprintf("%s:wght@%d", FamilyName(family), weight))
	q.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cssURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fontUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFontUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: %w", ErrFontUnavailable, &upstreamStatusError{url: f.cssURL, code: resp.StatusCode})
	}

	css, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFontUnavailable, err)
	}

	m := fontSrcPattern.FindSubmatch(css)
	if m == nil {
		return "", ErrFontParse
	}

	return fmt.Sprintf("@font-face{font-family:'%s';font-weight:%d;src:url(%s) format('%s');}",
		FamilyName(family), weight, m[1], m[2]), nil
}
