package avatar

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/glyphbox/initicon/options"
)

// Handler serves GET / by resolving the query string into a configuration
// and handing it to the service. Resolution never fails, so the only client
// errors are business-rule rejections.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the avatar HTTP handler.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o := options.Resolve(r.URL.Query())

	p, status, err := h.svc.Generate(r.Context(), o)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		h.log.ErrorContext(r.Context(), "avatar generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "avatar generation failed")
		return
	}

	w.Header().Set("Content-Type", p.ContentType())
	if status != "" {
		w.Header().Set("Cache", string(status))
	}
	if h.svc.store != nil {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.svc.store.TTL().Seconds())))
	}
	_, _ = w.Write(p.Bytes())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
