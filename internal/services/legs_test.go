package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agroute-trip-service/internal/adapters/routing"
	"agroute-trip-service/internal/domain"
)

func legStop(label string, lon, lat float64) domain.Stop {
	c := domain.Coordinates{Lon: lon, Lat: lat}
	return domain.Stop{Kind: domain.StopKindLocation, Label: label, Coord: &c}
}

func TestBuildRouteLegsLabelsAndTotals(t *testing.T) {
	stops := []domain.Stop{
		legStop("Home", -93.6, 41.6),
		legStop("Sully", -92.8, 41.6),
		legStop("Roland", -93.5, 42.0),
	}

	legs, totals, err := BuildRouteLegs(context.Background(), routing.NewMockLegProvider(), stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("legs = %d, want 2", len(legs))
	}

	if legs[0].FromLabel != "Home" || legs[0].ToLabel != "Sully" {
		t.Fatalf("leg 0 labels = %s -> %s", legs[0].FromLabel, legs[0].ToLabel)
	}
	if legs[1].FromLabel != "Sully" || legs[1].ToLabel != "Roland" {
		t.Fatalf("leg 1 labels = %s -> %s", legs[1].FromLabel, legs[1].ToLabel)
	}

	if totals == nil {
		t.Fatal("totals must be present on success")
	}
	wantDist := legs[0].DistanceMeters + legs[1].DistanceMeters
	if totals.DistanceMeters != wantDist {
		t.Fatalf("total distance = %d, want sum of legs %d", totals.DistanceMeters, wantDist)
	}
	wantDur := legs[0].DurationSeconds + legs[1].DurationSeconds
	if totals.DurationSeconds != wantDur {
		t.Fatalf("total duration = %d, want sum of legs %d", totals.DurationSeconds, wantDur)
	}

	// Straight-line legs carry plausible magnitudes (Sully to Roland is
	// roughly 75 km as the crow flies).
	if legs[1].DistanceMeters < 50_000 || legs[1].DistanceMeters > 100_000 {
		t.Fatalf("leg 1 distance = %dm out of plausible range", legs[1].DistanceMeters)
	}
}

func TestBuildRouteLegsTooFewStops(t *testing.T) {
	legs, totals, err := BuildRouteLegs(context.Background(), routing.NewMockLegProvider(), []domain.Stop{legStop("Only", -93.6, 41.6)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if legs != nil || totals != nil {
		t.Fatal("single stop has no legs and no totals")
	}
}

func TestBuildRouteLegsMissingCoordinates(t *testing.T) {
	stops := []domain.Stop{
		legStop("Home", -93.6, 41.6),
		{Kind: domain.StopKindLocation, Label: "Unresolved"},
	}

	_, _, err := BuildRouteLegs(context.Background(), routing.NewMockLegProvider(), stops)
	if err == nil {
		t.Fatal("expected error for stop without coordinates")
	}
	if !strings.Contains(err.Error(), "Unresolved") {
		t.Fatalf("error should name the offending stop: %v", err)
	}
}

func TestBuildRouteLegsProviderFailure(t *testing.T) {
	provider := routing.NewMockLegProvider()
	provider.Err = errors.New("upstream down")

	stops := []domain.Stop{
		legStop("Home", -93.6, 41.6),
		legStop("Sully", -92.8, 41.6),
	}

	legs, totals, err := BuildRouteLegs(context.Background(), provider, stops)
	if err == nil {
		t.Fatal("expected provider failure to surface")
	}
	if legs != nil || totals != nil {
		t.Fatal("failure must not return partial legs or totals")
	}
}
