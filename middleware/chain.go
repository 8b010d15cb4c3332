// Package middleware provides the HTTP middleware for the avatar server:
// panic recovery, request IDs, request metrics, IP filtering and rate
// limiting, plus the priority builder that fixes their execution order.
package middleware

import (
	"cmp"
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// entry pairs a middleware with a deterministic execution order. Lower Order
// values run first (outermost).
type entry struct {
	mw    Middleware
	order int
}

// Builder collects middleware entries and produces a priority-sorted chain.
// Registration order does not matter; only the declared order does.
type Builder struct {
	entries []entry
}

// Add registers mw to run at the given order.
func (b *Builder) Add(order int, mw Middleware) {
	b.entries = append(b.entries, entry{mw: mw, order: order})
}

// Build sorts the collected middleware by order (stable) and returns the
// chain as a single Middleware.
func (b *Builder) Build() Middleware {
	sorted := slices.Clone(b.entries)
	slices.SortStableFunc(sorted, func(a, c entry) int {
		return cmp.Compare(a.order, c.order)
	})

	return func(next http.Handler) http.Handler {
		for i := len(sorted) - 1; i >= 0; i-- {
			next = sorted[i].mw(next)
		}
		return next
	}
}
