package services

import (
	"strings"
	"testing"

	"agroute-trip-service/internal/domain"
)

func lineCoords(n int) []domain.Coordinates {
	coords := make([]domain.Coordinates, 0, n)
	for i := 0; i < n; i++ {
		coords = append(coords, domain.Coordinates{
			Lon: -93.5 + float64(i)*0.1,
			Lat: 41.5 + float64(i)*0.05,
		})
	}
	return coords
}

func TestChunkCoordsContinuity(t *testing.T) {
	// 10 coordinates with an advance cap of 8 must produce exactly 2
	// chunks, the second starting where the first ends.
	coords := lineCoords(10)

	chunks := chunkCoords(coords, 8)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}

	first := chunks[0]
	second := chunks[1]
	if first[len(first)-1] != second[0] {
		t.Fatalf("chunk endpoints must be shared: %v vs %v", first[len(first)-1], second[0])
	}

	// ceil((N-1)/C) across a range of sizes and caps.
	for n := 2; n <= 30; n++ {
		for c := 1; c <= 12; c++ {
			got := len(chunkCoords(lineCoords(n), c))
			want := ((n - 1) + c - 1) / c
			if got != want {
				t.Fatalf("n=%d cap=%d: chunks = %d, want %d", n, c, got, want)
			}
		}
	}
}

func TestBuildLinksGoogle(t *testing.T) {
	links := BuildLinks(ProviderGoogle, lineCoords(4))
	if len(links) != 1 {
		t.Fatalf("links = %d, want 1", len(links))
	}

	link := links[0]
	if !strings.HasPrefix(link, "https://www.google.com/maps/dir/?") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if !strings.Contains(link, "origin=41.500000%2C-93.500000") {
		t.Fatalf("origin missing or unencoded: %s", link)
	}
	if !strings.Contains(link, "waypoints=") || !strings.Contains(link, "%7C") {
		t.Fatalf("intermediate waypoints must be percent-encoded with %%7C separators: %s", link)
	}

	// 12 coordinates exceed the 9-waypoint advance cap: two links whose
	// boundary coordinate appears as destination of one and origin of
	// the next.
	links = BuildLinks(ProviderGoogle, lineCoords(12))
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if !strings.Contains(links[0], "destination=41.950000%2C-92.600000") ||
		!strings.Contains(links[1], "origin=41.950000%2C-92.600000") {
		t.Fatalf("chunk continuity broken:\n%s\n%s", links[0], links[1])
	}
}

func TestBuildLinksApple(t *testing.T) {
	links := BuildLinks(ProviderApple, lineCoords(3))
	if len(links) != 1 {
		t.Fatalf("links = %d, want 1", len(links))
	}
	if !strings.HasPrefix(links[0], "https://maps.apple.com/?") {
		t.Fatalf("unexpected link prefix: %s", links[0])
	}
	if !strings.Contains(links[0], "saddr=41.500000%2C-93.500000") {
		t.Fatalf("start address missing: %s", links[0])
	}
	if !strings.Contains(links[0], "to%3A") {
		t.Fatalf("chained destinations must be encoded: %s", links[0])
	}
}

func TestBuildLinksWaze(t *testing.T) {
	links := BuildLinks(ProviderWaze, lineCoords(4))
	// One standalone link per stop past the origin.
	if len(links) != 3 {
		t.Fatalf("links = %d, want 3", len(links))
	}
	for _, l := range links {
		if !strings.HasPrefix(l, "https://waze.com/ul?") || !strings.Contains(l, "navigate=yes") {
			t.Fatalf("unexpected waze link: %s", l)
		}
	}
}

func TestBuildLinksTooFewCoordinates(t *testing.T) {
	for _, p := range []Provider{ProviderGoogle, ProviderApple, ProviderWaze} {
		if got := BuildLinks(p, lineCoords(1)); len(got) != 0 {
			t.Fatalf("%s: expected no links for a single coordinate, got %d", p, len(got))
		}
		if got := BuildLinks(p, nil); len(got) != 0 {
			t.Fatalf("%s: expected no links for nil coordinates, got %d", p, len(got))
		}
	}
}

func TestKnownProvider(t *testing.T) {
	if !KnownProvider(ProviderGoogle) || !KnownProvider(ProviderApple) || !KnownProvider(ProviderWaze) {
		t.Fatal("all three providers should be known")
	}
	if KnownProvider(Provider("mapquest")) {
		t.Fatal("unknown provider should be rejected")
	}
}
