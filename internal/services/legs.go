package services

import (
	"context"
	"fmt"

	"agroute-trip-service/internal/domain"
	"agroute-trip-service/internal/ports"
)

// BuildRouteLegs requests per-leg travel metrics for a routing-ready
// stop sequence and shapes them into labeled route legs with totals.
//
// A provider failure is returned as an error; callers treat it as the
// degraded "no legs available" state (nil legs, nil totals) rather than
// a fatal condition, since navigation links need no leg data.
func BuildRouteLegs(
	ctx context.Context,
	provider ports.RouteLegProvider,
	stops []domain.Stop,
) ([]domain.RouteLeg, *domain.RouteTotals, error) {
	if len(stops) < 2 {
		return nil, nil, nil
	}

	coords := make([]domain.Coordinates, 0, len(stops))
	for _, s := range stops {
		if s.Coord == nil {
			return nil, nil, fmt.Errorf("build route legs: stop %q has no coordinates", s.Label)
		}
		coords = append(coords, *s.Coord)
	}

	results, err := provider.Legs(ctx, coords)
	if err != nil {
		return nil, nil, fmt.Errorf("build route legs: %w", err)
	}
	if len(results) != len(stops)-1 {
		return nil, nil, fmt.Errorf(
			"build route legs: provider returned %d legs for %d stops",
			len(results), len(stops),
		)
	}

	legs := make([]domain.RouteLeg, 0, len(results))
	totals := &domain.RouteTotals{}
	for i, r := range results {
		legs = append(legs, domain.RouteLeg{
			FromLabel:       stops[i].Label,
			ToLabel:         stops[i+1].Label,
			DistanceMeters:  r.DistanceMeters,
			DurationSeconds: r.DurationSeconds,
		})
		totals.DistanceMeters += r.DistanceMeters
		totals.DurationSeconds += r.DurationSeconds
	}

	return legs, totals, nil
}
