package domain

import "strings"

// StopKind distinguishes real repository locations from the synthesized
// home pseudo-location.
type StopKind string

const (
	StopKindLocation StopKind = "location"
	StopKindHome     StopKind = "home"
)

// Stop is a single trip waypoint: a repository Location, or a Home stop
// synthesized from a resolved address/zip that is not part of the
// repository. Coord is nil when the stop has not been geocoded.
type Stop struct {
	Kind     StopKind
	Label    string
	Retailer string
	Address  string
	City     string
	State    string
	Zip      string
	Phone    string
	Contact  string
	Coord    *Coordinates
}

// StopFromLocation copies the descriptive fields of a repository location
// into a trip stop.
func StopFromLocation(l Location) Stop {
	coord := l.Coord
	return Stop{
		Kind:     StopKindLocation,
		Label:    l.Label,
		Retailer: l.Retailer,
		Address:  l.Address,
		City:     l.City,
		State:    l.State,
		Zip:      l.Zip,
		Phone:    l.Phone,
		Contact:  l.Contact,
		Coord:    &coord,
	}
}

// SameIdentity reports whether two stops denote the same place.
// Identity is the (label, address) pair, compared case-insensitively.
func (s Stop) SameIdentity(o Stop) bool {
	return strings.EqualFold(strings.TrimSpace(s.Label), strings.TrimSpace(o.Label)) &&
		strings.EqualFold(strings.TrimSpace(s.Address), strings.TrimSpace(o.Address))
}
