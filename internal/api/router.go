package api

import (
	"net/http"

	"agroute-trip-service/internal/api/handlers"
	"agroute-trip-service/internal/ports"
	"agroute-trip-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware
// of concrete adapters.
func NewRouter(
	session *services.Session,
	provider ports.RouteLegProvider,
	geocoder ports.Geocoder,
	store ports.SnapshotStore,
) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{Session: session}
	locations := &handlers.LocationHandler{Session: session}
	trip := &handlers.TripHandler{
		Session:  session,
		Provider: provider,
		Geocoder: geocoder,
	}
	snapshot := &handlers.SnapshotHandler{
		Session:  session,
		Provider: provider,
		Store:    store,
	}

	mux.HandleFunc("/health", health.Health)
	mux.HandleFunc("/locations", locations.List)
	mux.HandleFunc("/filter", locations.Filter)
	mux.HandleFunc("/trip", trip.Get)
	mux.HandleFunc("/trip/home", trip.Home)
	mux.HandleFunc("/trip/stops", trip.Stops)
	mux.HandleFunc("/trip/clear", trip.Clear)
	mux.HandleFunc("/trip/route", trip.Route)
	mux.HandleFunc("/trip/links", trip.Links)
	mux.HandleFunc("/trip/snapshot", snapshot.Create)
	mux.HandleFunc("/snapshot", snapshot.Get)

	return accessLog(mux)
}
