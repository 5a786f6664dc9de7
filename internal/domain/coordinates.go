package domain

import "math"

// Mean Earth radius in meters, used by the equirectangular approximation.
const earthRadiusMeters = 6371000.0

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Valid reports whether the coordinates fall inside the WGS84 ranges.
// Locations that fail this check are excluded from all downstream
// computation at load time.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) {
		return false
	}
	return c.Lon >= -180 && c.Lon <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// DistanceMeters returns the approximate great-circle distance to o using
// an equirectangular projection. The approximation is adequate at regional
// trip-planning scale and is not an exact geodesic; callers needing road
// distance go through a RouteLegProvider instead.
func (c Coordinates) DistanceMeters(o Coordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (o.Lon - c.Lon) * math.Pi / 180

	x := dLon * math.Cos((lat1+lat2)/2)
	return earthRadiusMeters * math.Sqrt(x*x+dLat*dLat)
}
