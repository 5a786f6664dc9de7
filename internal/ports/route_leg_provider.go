package ports

import (
	"context"

	"agroute-trip-service/internal/domain"
)

// Distance and travel duration for one leg between consecutive stops.
type LegResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving per-leg travel metrics for an ordered
// coordinate sequence. Given n coordinates the provider returns n-1
// results, one per consecutive pair, or an error with no partial data.
type RouteLegProvider interface {
	Legs(ctx context.Context, coords []domain.Coordinates) ([]LegResult, error)
}

// Contract for resolving a street address or zip to coordinates. Used to
// synthesize the home stop; dataset geocoding happens upstream of this
// service.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
