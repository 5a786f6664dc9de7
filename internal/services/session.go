package services

import (
	"errors"
	"sync"

	"agroute-trip-service/internal/domain"
)

// ErrNoHomeCoordinates is returned when an operation needs a geocoded
// home anchor and none is set.
var ErrNoHomeCoordinates = errors.New("trip has no geocoded home anchor")

// Session owns all mutable planning state for one user session: the
// loaded dataset, the current filter selection and the trip. Derived
// state (visible set, summaries, routing order) is recomputed in full on
// access; nothing is cached across mutations.
//
// The trip has exactly one writer. Session methods serialize access with
// a mutex so concurrent HTTP requests never observe a half-updated trip.
type Session struct {
	mu        sync.Mutex
	locations []domain.Location
	policy    FilterPolicy
	selection Selection
	trip      *domain.Trip
}

func NewSession(locations []domain.Location, policy FilterPolicy) *Session {
	return &Session{
		locations: locations,
		policy:    policy,
		trip:      domain.NewTrip(),
	}
}

// SetSelection replaces the filter selection.
func (s *Session) SetSelection(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Visible recomputes the visible set for the current selection.
func (s *Session) Visible() []domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ApplyFilter(s.locations, s.selection, s.policy)
}

// Summary recomputes the per-retailer rollups for the visible set.
func (s *Session) Summary() []RetailerSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	visible := ApplyFilter(s.locations, s.selection, s.policy)
	return Summarize(visible, s.policy)
}

// Locations returns the full loaded dataset, unfiltered.
func (s *Session) Locations() []domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// FindLocation looks up a repository location by ID.
func (s *Session) FindLocation(id string) (domain.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, loc := range s.locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return domain.Location{}, false
}

func (s *Session) LocationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locations)
}

func (s *Session) SetHome(home domain.Stop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip.SetHome(home)
}

func (s *Session) ClearHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip.ClearHome()
}

func (s *Session) Home() *domain.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.Home()
}

func (s *Session) AddStop(stop domain.Stop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.AddStop(stop)
}

func (s *Session) RemoveStop(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.RemoveStop(i)
}

func (s *Session) ClearStops() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip.Clear()
}

func (s *Session) Stops() []domain.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.Stops()
}

// RoutingOrder projects the trip into its home-anchored export order.
func (s *Session) RoutingOrder() []domain.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.RoutingOrder()
}

// OptimizeTrip reorders the non-home stops for mode and commits the
// result back into the trip. It requires a geocoded home anchor, which
// serves as the tour's fixed endpoint.
func (s *Session) OptimizeTrip(mode OptimizeMode) ([]domain.Stop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	home := s.trip.Home()
	if home == nil || home.Coord == nil {
		return nil, ErrNoHomeCoordinates
	}

	optimized := Optimize(s.trip.Stops(), *home.Coord, mode)
	if err := s.trip.Reorder(optimized); err != nil {
		return nil, err
	}
	return optimized, nil
}
