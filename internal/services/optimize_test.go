package services

import (
	"math/rand"
	"testing"

	"agroute-trip-service/internal/domain"
)

func coordStop(label string, lon, lat float64) domain.Stop {
	return domain.Stop{
		Label:   label,
		Address: label + " Rd",
		Coord:   &domain.Coordinates{Lon: lon, Lat: lat},
	}
}

func TestOptimizeAsEnteredIsIdentity(t *testing.T) {
	stops := []domain.Stop{
		coordStop("A", -93.0, 41.0),
		coordStop("B", -94.0, 42.0),
		coordStop("C", -93.2, 41.8),
	}
	anchor := domain.Coordinates{Lon: -93.5, Lat: 41.5}

	got := Optimize(stops, anchor, ModeAsEntered)
	for i := range stops {
		if got[i].Label != stops[i].Label {
			t.Fatalf("as-entered mode must preserve order, got %q at %d", got[i].Label, i)
		}
	}
}

func TestOptimizeNearestNeighborScenario(t *testing.T) {
	// Home at (-93.5, 41.5); C is the closest stop, so the greedy tour
	// starts with C, then takes B (nearer to C than A), then A. 2-opt
	// may reorder further but never produces a longer tour.
	stops := []domain.Stop{
		coordStop("A", -93.0, 41.0),
		coordStop("B", -94.0, 42.0),
		coordStop("C", -93.2, 41.8),
	}
	anchor := domain.Coordinates{Lon: -93.5, Lat: 41.5}

	nn := make([]domain.Stop, len(stops))
	for i, idx := range nearestNeighborOrder(stopCoords(stops), anchor) {
		nn[i] = stops[idx]
	}
	if nn[0].Label != "C" {
		t.Fatalf("first nearest-neighbor stop = %q, want C", nn[0].Label)
	}
	if nn[1].Label != "B" {
		t.Fatalf("second nearest-neighbor stop = %q, want B (closer to C than A)", nn[1].Label)
	}

	got := Optimize(stops, anchor, ModeOptimized)
	if TourLengthMeters(got, anchor) > TourLengthMeters(nn, anchor) {
		t.Fatalf(
			"2-opt lengthened the tour: %.0f > %.0f",
			TourLengthMeters(got, anchor), TourLengthMeters(nn, anchor),
		)
	}
}

func TestOptimizeMonotonicOverRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	anchor := domain.Coordinates{Lon: -93.5, Lat: 41.5}

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(14)
		stops := make([]domain.Stop, 0, n)
		for i := 0; i < n; i++ {
			stops = append(stops, coordStop(
				string(rune('A'+i)),
				-94+rng.Float64()*2,
				41+rng.Float64()*2,
			))
		}

		nn := make([]domain.Stop, n)
		for i, idx := range nearestNeighborOrder(stopCoords(stops), anchor) {
			nn[i] = stops[idx]
		}

		got := Optimize(stops, anchor, ModeOptimized)
		if len(got) != n {
			t.Fatalf("trial %d: optimizer dropped stops: %d != %d", trial, len(got), n)
		}
		if TourLengthMeters(got, anchor) > TourLengthMeters(nn, anchor)+1e-6 {
			t.Fatalf(
				"trial %d: optimized tour %.1f longer than NN tour %.1f",
				trial, TourLengthMeters(got, anchor), TourLengthMeters(nn, anchor),
			)
		}
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	stops := []domain.Stop{
		coordStop("A", -93.0, 41.0),
		coordStop("B", -94.0, 42.0),
		coordStop("C", -93.2, 41.8),
		coordStop("D", -93.9, 41.2),
		coordStop("E", -92.9, 41.9),
	}
	anchor := domain.Coordinates{Lon: -93.5, Lat: 41.5}

	first := Optimize(stops, anchor, ModeOptimized)
	for trial := 0; trial < 5; trial++ {
		again := Optimize(stops, anchor, ModeOptimized)
		for i := range first {
			if first[i].Label != again[i].Label {
				t.Fatalf("non-deterministic output at %d: %q vs %q", i, first[i].Label, again[i].Label)
			}
		}
	}
}

func TestOptimizeCeilingFallsBackToNearestNeighbor(t *testing.T) {
	stops := []domain.Stop{
		coordStop("A", -93.0, 41.0),
		coordStop("B", -94.0, 42.0),
		coordStop("C", -93.2, 41.8),
		coordStop("D", -93.9, 41.2),
	}
	anchor := domain.Coordinates{Lon: -93.5, Lat: 41.5}

	got := OptimizeWithCeiling(stops, anchor, ModeOptimized, 2)

	want := make([]domain.Stop, len(stops))
	for i, idx := range nearestNeighborOrder(stopCoords(stops), anchor) {
		want[i] = stops[idx]
	}
	for i := range want {
		if got[i].Label != want[i].Label {
			t.Fatalf("above the ceiling the NN tour must be returned as-is; got %q at %d, want %q", got[i].Label, i, want[i].Label)
		}
	}
}

func TestOptimizeMissingCoordinatesDegrades(t *testing.T) {
	stops := []domain.Stop{
		coordStop("A", -93.0, 41.0),
		{Label: "B", Address: "B Rd"}, // never geocoded
	}
	anchor := domain.Coordinates{Lon: -93.5, Lat: 41.5}

	got := Optimize(stops, anchor, ModeOptimized)
	if got[0].Label != "A" || got[1].Label != "B" {
		t.Fatal("stops without coordinates must be returned in input order")
	}
}

func stopCoords(stops []domain.Stop) []domain.Coordinates {
	pts := make([]domain.Coordinates, len(stops))
	for i, s := range stops {
		pts[i] = *s.Coord
	}
	return pts
}
