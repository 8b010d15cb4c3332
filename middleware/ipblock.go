package middleware

import (
	"net/http"

	"github.com/glyphbox/initicon/security"
)

// IPBlock returns middleware that denies requests with a 403 when the
// blocker rejects the resolved client address.
func IPBlock(b *security.IPBlocker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !b.Check(r) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
