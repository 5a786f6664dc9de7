package routing

import (
	"context"
	"errors"

	"agroute-trip-service/internal/domain"
	"agroute-trip-service/internal/ports"
)

// MockLegProvider derives leg metrics from straight-line distance at a
// fixed average speed. Used in tests and in local runs without an ORS
// key.
type MockLegProvider struct {
	// Average speed used to synthesize durations. Defaults to ~72 km/h.
	MetersPerSecond float64
	// When set, every call fails; exercises the degraded no-legs path.
	Err error
}

func NewMockLegProvider() *MockLegProvider {
	return &MockLegProvider{MetersPerSecond: 20}
}

func (p *MockLegProvider) Legs(ctx context.Context, coords []domain.Coordinates) ([]ports.LegResult, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if len(coords) < 2 {
		return nil, nil
	}

	speed := p.MetersPerSecond
	if speed <= 0 {
		speed = 20
	}

	out := make([]ports.LegResult, 0, len(coords)-1)
	for i := 0; i+1 < len(coords); i++ {
		meters := coords[i].DistanceMeters(coords[i+1])
		out = append(out, ports.LegResult{
			DistanceMeters:  int(meters),
			DurationSeconds: int(meters / speed),
		})
	}
	return out, nil
}

// Geocode is unsupported by the mock; home coordinates must be supplied
// directly in requests.
func (p *MockLegProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	return domain.Coordinates{}, errors.New("mock provider cannot geocode addresses")
}
