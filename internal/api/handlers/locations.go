package handlers

import (
	"net/http"

	"agroute-trip-service/internal/api/dto"
	"agroute-trip-service/internal/domain"
	"agroute-trip-service/internal/services"
)

// LocationHandler exposes the loaded dataset and compound filtering.
type LocationHandler struct {
	Session *services.Session
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	locs := h.Session.Locations()
	res := dto.ListLocationsResponse{Locations: locationResponses(locs)}
	writeJSON(w, r, http.StatusOK, res)
}

// Filter applies a compound selection and returns the visible set plus
// its per-retailer rollup. The selection replaces the session's current
// one, so subsequent trip and snapshot calls see the same view.
func (h *LocationHandler) Filter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.FilterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.Session.SetSelection(services.Selection{
		States:     req.States,
		Retailers:  req.Retailers,
		Categories: req.Categories,
		Suppliers:  req.Suppliers,
	})

	visible := h.Session.Visible()
	summary := h.Session.Summary()

	res := dto.FilterResponse{
		Locations: locationResponses(visible),
		Summary:   make([]dto.RetailerSummaryResponse, 0, len(summary)),
	}
	for _, row := range summary {
		res.Summary = append(res.Summary, dto.RetailerSummaryResponse{
			Retailer:   row.Retailer,
			Count:      row.Count,
			States:     row.States,
			Suppliers:  row.Suppliers,
			Categories: row.Categories,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func locationResponses(locs []domain.Location) []dto.LocationResponse {
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, dto.LocationResponse{
			LocationID: l.ID,
			Label:      l.Label,
			Retailer:   l.Retailer,
			Category:   l.Category,
			Address:    l.Address,
			City:       l.City,
			State:      l.State,
			Zip:        l.Zip,
			Phone:      l.Phone,
			Contact:    l.Contact,
			Suppliers:  l.Suppliers,
			Lon:        l.Coord.Lon,
			Lat:        l.Coord.Lat,
		})
	}
	return out
}
