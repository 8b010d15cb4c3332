package middleware

import (
	"net/http"

	"github.com/glyphbox/initicon/ratelimit"
)

// RateLimit returns middleware that rejects requests with a 429 when the
// global limiter has been exhausted.
func RateLimit(l *ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
