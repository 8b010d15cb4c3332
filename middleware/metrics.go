package middleware

import (
	"net/http"
	"strconv"

	"github.com/glyphbox/initicon/metrics"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Metrics returns middleware that counts handled requests by status code.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rec, r)
			metrics.RequestsTotal.WithLabelValues(strconv.Itoa(rec.code)).Inc()
		})
	}
}
