package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"agroute-trip-service/internal/api/dto"
	"agroute-trip-service/internal/domain"
	"agroute-trip-service/internal/ports"
	"agroute-trip-service/internal/services"
)

// TripHandler owns the trip lifecycle: home anchoring, stop membership,
// route computation and navigation link export.
type TripHandler struct {
	Session  *services.Session
	Provider ports.RouteLegProvider
	Geocoder ports.Geocoder
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, r, http.StatusOK, h.tripResponse())
}

// Home sets (POST) or clears (DELETE) the trip's home anchor. A home
// without explicit coordinates is geocoded best-effort; geocoding
// failure still sets the anchor so manual ordering and link export for
// the remaining stops keep working.
func (h *TripHandler) Home(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodDelete:
		h.Session.ClearHome()
		writeJSON(w, r, http.StatusOK, h.tripResponse())
	case http.MethodPost:
		h.setHome(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) setHome(w http.ResponseWriter, r *http.Request) {
	var req dto.SetHomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	address := strings.TrimSpace(req.Address)
	zip := strings.TrimSpace(req.Zip)
	if address == "" && zip == "" && (req.Lon == nil || req.Lat == nil) {
		writeError(w, r, http.StatusBadRequest, "home needs an address, a zip or explicit coordinates")
		return
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = "Home"
	}

	home := domain.Stop{
		Kind:    domain.StopKindHome,
		Label:   label,
		Address: address,
		Zip:     zip,
	}

	if req.Lon != nil && req.Lat != nil {
		c := domain.Coordinates{Lon: *req.Lon, Lat: *req.Lat}
		if !c.Valid() {
			writeError(w, r, http.StatusBadRequest, "coordinates out of range")
			return
		}
		home.Coord = &c
	} else if h.Geocoder != nil {
		query := address
		if query == "" {
			query = zip
		}
		coord, err := h.Geocoder.Geocode(r.Context(), query)
		if err != nil {
			log.Printf("geocode home failed: query=%q err=%v", query, err)
		} else {
			home.Coord = &coord
		}
	}

	h.Session.SetHome(home)
	writeJSON(w, r, http.StatusOK, dto.SetHomeResponse{
		Home:     stopResponse(home),
		Resolved: home.Coord != nil,
	})
}

// Stops adds (POST) or removes (DELETE, by idx query param) a trip stop.
func (h *TripHandler) Stops(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.addStop(w, r)
	case http.MethodDelete:
		h.removeStop(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) addStop(w http.ResponseWriter, r *http.Request) {
	var req dto.AddStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := strings.TrimSpace(req.LocationID)
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "location_id is required")
		return
	}

	loc, ok := h.Session.FindLocation(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown location")
		return
	}

	// Duplicates are reported, not rejected: re-adding a stop is a no-op.
	added := h.Session.AddStop(domain.StopFromLocation(loc))
	writeJSON(w, r, http.StatusOK, dto.AddStopResponse{
		Added:     added,
		StopCount: len(h.Session.Stops()),
	})
}

func (h *TripHandler) removeStop(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.URL.Query().Get("idx"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "idx must be an integer")
		return
	}
	if !h.Session.RemoveStop(idx) {
		writeError(w, r, http.StatusNotFound, "no stop at idx")
		return
	}
	writeJSON(w, r, http.StatusOK, h.tripResponse())
}

func (h *TripHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.Session.ClearStops()
	writeJSON(w, r, http.StatusOK, h.tripResponse())
}

// Route orders the trip for the requested mode and attaches road legs.
// A leg provider failure degrades the response to order-only (null legs
// and totals) instead of failing the whole request; the stop order is
// still useful without distances.
func (h *TripHandler) Route(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode := services.OptimizeMode(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = services.ModeAsEntered
	}
	if mode != services.ModeAsEntered && mode != services.ModeOptimized {
		writeError(w, r, http.StatusBadRequest, "mode must be as-entered or optimized")
		return
	}

	if _, err := h.Session.OptimizeTrip(mode); err != nil {
		if errors.Is(err, services.ErrNoHomeCoordinates) {
			writeError(w, r, http.StatusConflict, "set a geocoded home before routing")
			return
		}
		log.Printf("optimize trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	order := h.Session.RoutingOrder()
	legs, totals, err := services.BuildRouteLegs(r.Context(), h.Provider, order)
	if err != nil {
		log.Printf("route legs unavailable: %v", err)
		legs, totals = nil, nil
	}

	res := dto.RouteResponse{
		Mode:  string(mode),
		Stops: stopResponses(order),
	}
	for _, l := range legs {
		res.Legs = append(res.Legs, dto.RouteLegResponse{
			FromLabel:       l.FromLabel,
			ToLabel:         l.ToLabel,
			DistanceMeters:  l.DistanceMeters,
			DurationSeconds: l.DurationSeconds,
		})
	}
	if totals != nil {
		res.Totals = &dto.RouteTotalsResponse{
			DistanceMeters:  totals.DistanceMeters,
			DurationSeconds: totals.DurationSeconds,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Links encodes the current routing order as navigation deep links for
// the provider named in the query string.
func (h *TripHandler) Links(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	provider := services.Provider(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("provider"))))
	if !services.KnownProvider(provider) {
		writeError(w, r, http.StatusBadRequest, "provider must be google, apple or waze")
		return
	}

	var coords []domain.Coordinates
	for _, s := range h.Session.RoutingOrder() {
		if s.Coord != nil {
			coords = append(coords, *s.Coord)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.LinksResponse{
		Provider: string(provider),
		Links:    services.BuildLinks(provider, coords),
	})
}

func (h *TripHandler) tripResponse() dto.TripResponse {
	res := dto.TripResponse{Stops: stopResponses(h.Session.Stops())}
	if home := h.Session.Home(); home != nil {
		sr := stopResponse(*home)
		res.Home = &sr
	}
	return res
}

func stopResponse(s domain.Stop) dto.StopResponse {
	res := dto.StopResponse{
		Kind:     string(s.Kind),
		Label:    s.Label,
		Retailer: s.Retailer,
		Address:  s.Address,
		City:     s.City,
		State:    s.State,
		Zip:      s.Zip,
		Phone:    s.Phone,
		Contact:  s.Contact,
	}
	if s.Coord != nil {
		res.Coord = &[2]float64{s.Coord.Lon, s.Coord.Lat}
	}
	return res
}

func stopResponses(stops []domain.Stop) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, stopResponse(s))
	}
	return out
}
