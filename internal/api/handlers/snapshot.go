package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"agroute-trip-service/internal/api/dto"
	"agroute-trip-service/internal/ports"
	"agroute-trip-service/internal/services"
)

// SnapshotHandler captures print snapshots of the current trip and
// serves them back to the print view by key.
type SnapshotHandler struct {
	Session  *services.Session
	Provider ports.RouteLegProvider
	Store    ports.SnapshotStore
}

// Create freezes the current trip, legs and retailer summary into a
// versioned snapshot, stores it under a fresh key and returns the key.
// Leg computation is best-effort: a provider outage produces a snapshot
// with null legs and totals, which the print view renders without the
// distance column.
func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	order := h.Session.RoutingOrder()
	legs, totals, err := services.BuildRouteLegs(r.Context(), h.Provider, order)
	if err != nil {
		log.Printf("snapshot legs unavailable: %v", err)
		legs, totals = nil, nil
	}

	snap := services.CaptureSnapshot(h.Session.Home(), order, legs, totals, h.Session.Summary(), time.Now())
	payload, err := services.EncodeSnapshot(snap)
	if err != nil {
		log.Printf("encode snapshot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	key := uuid.NewString()
	if err := h.Store.Put(r.Context(), key, payload); err != nil {
		log.Printf("store snapshot failed: key=%s err=%v", key, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateSnapshotResponse{Key: key})
}

// Get loads and validates a stored snapshot. Missing keys and corrupt
// or unsupported payloads are client-visible conditions, not 500s: the
// print view shows "no trip data" for both.
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	payload, err := h.Store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			writeError(w, r, http.StatusNotFound, "no trip data")
			return
		}
		log.Printf("load snapshot failed: key=%s err=%v", key, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	snap, err := services.ParseSnapshot([]byte(payload))
	if err != nil {
		var perr *services.ParseError
		if errors.As(err, &perr) {
			log.Printf("reject snapshot: key=%s reason=%s", key, perr.Reason)
			writeError(w, r, http.StatusUnprocessableEntity, "no trip data")
			return
		}
		log.Printf("parse snapshot failed: key=%s err=%v", key, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, snap)
}
