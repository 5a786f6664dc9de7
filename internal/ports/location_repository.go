package ports

import (
	"context"

	"agroute-trip-service/internal/domain"
)

// Port: a boundary for retrieving Location entities from a data source.
// Implementations must return only locations with valid coordinates;
// excluded records are a load-time data quality concern.
type LocationRepository interface {
	// Retrieve all locations available for filtering and trip planning.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
