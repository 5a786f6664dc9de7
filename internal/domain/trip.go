package domain

import (
	"errors"
	"fmt"
)

// Trip is the ordered stop list owned by a planning session.
//
// Invariants:
//   - A defined home stop occupies both ends of RoutingOrder, never the
//     internal stop list.
//   - Non-home stops keep their relative insertion order until an
//     optimizer result is explicitly committed via Reorder.
//   - Stops are deduplicated by (label, address) identity; adding an
//     already-present stop is a no-op.
type Trip struct {
	home  *Stop
	stops []Stop
}

func NewTrip() *Trip {
	return &Trip{}
}

// SetHome defines or replaces the home anchor. The home stop is not part
// of the internal stop list; it is reinserted by RoutingOrder.
func (t *Trip) SetHome(s Stop) {
	s.Kind = StopKindHome
	t.home = &s
}

// ClearHome removes the home anchor. Index-based removal never touches
// home; this is the only way to unset it.
func (t *Trip) ClearHome() {
	t.home = nil
}

func (t *Trip) Home() *Stop {
	if t.home == nil {
		return nil
	}
	h := *t.home
	return &h
}

// AddStop appends a stop unless an identical stop (or the home anchor)
// is already present. Returns true when the stop was added.
func (t *Trip) AddStop(s Stop) bool {
	if t.home != nil && t.home.SameIdentity(s) {
		return false
	}
	for _, existing := range t.stops {
		if existing.SameIdentity(s) {
			return false
		}
	}
	s.Kind = StopKindLocation
	t.stops = append(t.stops, s)
	return true
}

// RemoveStop deletes the non-home stop at index i. Returns false when
// the index is out of range.
func (t *Trip) RemoveStop(i int) bool {
	if i < 0 || i >= len(t.stops) {
		return false
	}
	t.stops = append(t.stops[:i], t.stops[i+1:]...)
	return true
}

// Clear removes all non-home stops, returning the trip to its empty or
// home-only state.
func (t *Trip) Clear() {
	t.stops = nil
}

func (t *Trip) Len() int { return len(t.stops) }

// Stops returns a copy of the non-home stops in their current order.
func (t *Trip) Stops() []Stop {
	out := make([]Stop, len(t.stops))
	copy(out, t.stops)
	return out
}

// RoutingOrder is a pure projection of the trip for routing, linking and
// printing: [home, stops..., home] when home is set, the stops as-is
// otherwise. It never mutates the underlying trip.
func (t *Trip) RoutingOrder() []Stop {
	if t.home == nil {
		return t.Stops()
	}
	out := make([]Stop, 0, len(t.stops)+2)
	out = append(out, *t.home)
	out = append(out, t.stops...)
	out = append(out, *t.home)
	return out
}

// Reorder commits an optimizer result back into the trip. The new order
// must be a permutation of the current non-home stops.
func (t *Trip) Reorder(stops []Stop) error {
	if len(stops) != len(t.stops) {
		return fmt.Errorf("reorder trip: got %d stops, trip has %d", len(stops), len(t.stops))
	}

	used := make([]bool, len(t.stops))
	for _, s := range stops {
		found := false
		for i, existing := range t.stops {
			if !used[i] && existing.SameIdentity(s) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return errors.New("reorder trip: stop list is not a permutation of the current trip")
		}
	}

	next := make([]Stop, len(stops))
	copy(next, stops)
	t.stops = next
	return nil
}
