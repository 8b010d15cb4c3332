package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/glyphbox/initicon/contextx"
)

// requestIDHeader is honored on the way in and always set on the way out.
const requestIDHeader = "X-Request-Id"

// newRequestID generates a random hex-encoded request identifier.
func newRequestID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

// RequestID returns middleware that ensures every request carries an ID in
// its context and echoes it in the response header.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = newRequestID()
			}
			w.Header().Set(requestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(contextx.WithRequestID(r.Context(), id)))
		})
	}
}
