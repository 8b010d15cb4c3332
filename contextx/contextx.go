// Package contextx carries per-request values through the handler chain via
// typed, collision-safe context keys.
package contextx

import "context"

// contextKey is an unexported type used as context key to avoid collisions
// with keys defined in other packages.
type contextKey int

const requestIDKey contextKey = iota

// WithRequestID returns a derived context that carries the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID stored in ctx.
// It returns an empty string when no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
