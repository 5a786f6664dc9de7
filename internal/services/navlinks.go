package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"agroute-trip-service/internal/domain"
)

// Provider identifies a target navigation app.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
	ProviderWaze   Provider = "waze"
)

// Per-provider waypoint caps: the maximum number of coordinates a single
// deep link may advance past its origin. Caps differ numerically but the
// chunking rule is shared.
const (
	googleWaypointCap = 9
	appleChainCap     = 12
)

// KnownProvider reports whether p is a supported navigation provider.
func KnownProvider(p Provider) bool {
	switch p {
	case ProviderGoogle, ProviderApple, ProviderWaze:
		return true
	}
	return false
}

// BuildLinks encodes an ordered coordinate sequence as one or more deep
// links for the given provider.
//
// Sequences longer than the provider cap are split into consecutive
// chunks whose endpoints are shared (each chunk's destination is the
// next chunk's origin) so the full path stays continuous across links.
// For a cap C and N coordinates the chained styles emit ceil((N-1)/C)
// links. Waze has no multi-stop support and emits one standalone link
// per coordinate after the first; callers present those as sequential
// steps. Fewer than two coordinates yields no links.
func BuildLinks(p Provider, coords []domain.Coordinates) []string {
	if len(coords) < 2 {
		return nil
	}

	switch p {
	case ProviderGoogle:
		return buildGoogleLinks(coords, googleWaypointCap)
	case ProviderApple:
		return buildAppleLinks(coords, appleChainCap)
	case ProviderWaze:
		return buildWazeLinks(coords)
	}
	return nil
}

// chunkCoords splits coords into overlapping windows of at most cap+1
// points. Consecutive chunks share their boundary coordinate.
func chunkCoords(coords []domain.Coordinates, limit int) [][]domain.Coordinates {
	if len(coords) < 2 || limit < 1 {
		return nil
	}

	var chunks [][]domain.Coordinates
	for start := 0; start < len(coords)-1; start += limit {
		end := start + limit
		if end > len(coords)-1 {
			end = len(coords) - 1
		}
		chunks = append(chunks, coords[start:end+1])
	}
	return chunks
}

// buildGoogleLinks emits Google Maps directions links: origin +
// destination + intermediate waypoints.
func buildGoogleLinks(coords []domain.Coordinates, limit int) []string {
	chunks := chunkCoords(coords, limit)
	links := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		q := url.Values{}
		q.Set("api", "1")
		q.Set("travelmode", "driving")
		q.Set("origin", formatCoord(chunk[0]))
		q.Set("destination", formatCoord(chunk[len(chunk)-1]))

		if len(chunk) > 2 {
			waypoints := make([]string, 0, len(chunk)-2)
			for _, c := range chunk[1 : len(chunk)-1] {
				waypoints = append(waypoints, formatCoord(c))
			}
			q.Set("waypoints", strings.Join(waypoints, "|"))
		}

		links = append(links, "https://www.google.com/maps/dir/?"+q.Encode())
	}

	return links
}

// buildAppleLinks emits Apple Maps links: a start address plus a chain
// of destination points.
func buildAppleLinks(coords []domain.Coordinates, limit int) []string {
	chunks := chunkCoords(coords, limit)
	links := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		daddr := make([]string, 0, len(chunk)-1)
		for _, c := range chunk[1:] {
			daddr = append(daddr, formatCoord(c))
		}

		q := url.Values{}
		q.Set("saddr", formatCoord(chunk[0]))
		q.Set("daddr", strings.Join(daddr, " to:"))
		q.Set("dirflg", "d")

		links = append(links, "https://maps.apple.com/?"+q.Encode())
	}

	return links
}

// buildWazeLinks emits one navigate-to link per stop past the origin.
func buildWazeLinks(coords []domain.Coordinates) []string {
	links := make([]string, 0, len(coords)-1)
	for _, c := range coords[1:] {
		q := url.Values{}
		q.Set("ll", formatCoord(c))
		q.Set("navigate", "yes")
		links = append(links, "https://waze.com/ul?"+q.Encode())
	}
	return links
}

// formatCoord renders "lat,lng" with fixed 6-decimal precision, roughly
// 10 cm of resolution, which every target provider accepts.
func formatCoord(c domain.Coordinates) string {
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(c.Lat, 'f', 6, 64),
		strconv.FormatFloat(c.Lon, 'f', 6, 64),
	)
}
