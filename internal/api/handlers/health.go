package handlers

import (
	"net/http"

	"agroute-trip-service/internal/services"
)

// HealthHandler reports liveness plus the size of the loaded dataset,
// so a probe can tell "up" apart from "up but seeded with nothing".
type HealthHandler struct {
	Session *services.Session
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{
		"status":    "ok",
		"locations": h.Session.LocationCount(),
	}
	writeJSON(w, r, http.StatusOK, res)
}
