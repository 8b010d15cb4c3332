// Package health provides the liveness and readiness endpoints. Readiness is
// gated on the render engine's one-time warmup, so load balancers only route
// traffic once the service can actually produce images.
package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// response is the JSON body returned by both probes.
type response struct {
	Status         string `json:"status"`
	ServerTimeUnix int64  `json:"server_time_unix"`
}

// Handler serves the health probes.
type Handler struct {
	ready func() bool
}

// New creates a Handler. The ready callback reports whether one-time
// initialization has completed; a nil callback means always ready.
func New(ready func() bool) *Handler {
	return &Handler{ready: ready}
}

// Live always reports the process as alive.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Status: "ok", ServerTimeUnix: time.Now().Unix()})
}

// Ready reports 200 once initialization has completed, 503 before that.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil && !h.ready() {
		writeJSON(w, http.StatusServiceUnavailable, response{Status: "starting", ServerTimeUnix: time.Now().Unix()})
		return
	}
	writeJSON(w, http.StatusOK, response{Status: "ok", ServerTimeUnix: time.Now().Unix()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
