package domain

import (
	"math"
	"testing"
)

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name  string
		coord Coordinates
		want  bool
	}{
		{"des moines", Coordinates{Lon: -93.6, Lat: 41.6}, true},
		{"lon out of range", Coordinates{Lon: -190, Lat: 41.6}, false},
		{"lat out of range", Coordinates{Lon: -93.6, Lat: 95}, false},
		{"nan", Coordinates{Lon: math.NaN(), Lat: 41.6}, false},
		{"boundary", Coordinates{Lon: 180, Lat: -90}, true},
	}

	for _, tc := range cases {
		if got := tc.coord.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCoordinatesDistanceMeters(t *testing.T) {
	desMoines := Coordinates{Lon: -93.61, Lat: 41.59}
	amesIowa := Coordinates{Lon: -93.62, Lat: 42.03}

	d := desMoines.DistanceMeters(amesIowa)

	// Roughly 49 km apart; the equirectangular approximation should land
	// within a few percent at this scale.
	if d < 45000 || d > 53000 {
		t.Fatalf("distance = %.0f m, want ~49000", d)
	}

	if desMoines.DistanceMeters(desMoines) != 0 {
		t.Fatal("distance to self should be zero")
	}

	if desMoines.DistanceMeters(amesIowa) != amesIowa.DistanceMeters(desMoines) {
		t.Fatal("distance should be symmetric")
	}
}
