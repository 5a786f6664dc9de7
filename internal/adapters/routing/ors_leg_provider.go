package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agroute-trip-service/internal/adapters/cache"
	"agroute-trip-service/internal/domain"
	"agroute-trip-service/internal/ports"
)

// ORSLegProvider implements RouteLegProvider and Geocoder using
// OpenRouteService.
//
// It coordinates:
//   - Persistent per-leg result caching
//   - Persistent geocode caching for home address resolution
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSLegProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	legCache     *cache.SqliteLegCache
	geocodeCache *cache.SqliteGeocodeCache
}

func NewORSLegProvider(
	apiKey string,
	legCache *cache.SqliteLegCache,
	geocodeCache *cache.SqliteGeocodeCache,
) (*ORSLegProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSLegProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		legCache:     legCache,
		geocodeCache: geocodeCache,
	}

	return provider, nil
}

// pairKey builds a stable cache key for one leg. Fixed precision keeps
// keys identical across requests for the same stops.
func pairKey(a, b domain.Coordinates) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return f(a.Lon) + "," + f(a.Lat) + "|" + f(b.Lon) + "," + f(b.Lat)
}

// Legs returns one result per consecutive coordinate pair.
//
// The persistent leg cache is consulted first; a single directions call
// covers any misses, after which all fetched legs are written back.
func (o *ORSLegProvider) Legs(ctx context.Context, coords []domain.Coordinates) ([]ports.LegResult, error) {
	if len(coords) < 2 {
		return nil, nil
	}

	for i, c := range coords {
		if !c.Valid() {
			return nil, fmt.Errorf("get ORS legs: coordinate %d out of range", i)
		}
	}

	keys := make([]string, 0, len(coords)-1)
	for i := 0; i+1 < len(coords); i++ {
		keys = append(keys, pairKey(coords[i], coords[i+1]))
	}

	hits := map[string]ports.LegResult{}
	if o.legCache != nil {
		var err error
		hits, err = o.legCache.GetMany(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("get ORS legs: leg cache: %w", err)
		}
	}

	allCached := true
	for _, k := range keys {
		if _, ok := hits[k]; !ok {
			allCached = false
			break
		}
	}

	if allCached {
		out := make([]ports.LegResult, 0, len(keys))
		for _, k := range keys {
			out = append(out, hits[k])
		}
		return out, nil
	}

	fetched, err := o.fetchDirections(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("get ORS legs: %w", err)
	}

	if o.legCache != nil {
		toCache := make(map[string]ports.LegResult, len(keys))
		for i, k := range keys {
			toCache[k] = fetched[i]
		}
		if err := o.legCache.PutMany(ctx, toCache); err != nil {
			log.Printf("leg cache write failed: %v", err)
		}
	}

	return fetched, nil
}

// normalize ensures consistent geocode cache keys by collapsing whitespace.
func (o *ORSLegProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves a street address or zip to coordinates, consulting
// the persistent geocode cache before calling ORS.
func (o *ORSLegProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := o.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache: %w", err)
		}
		if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	coord, err := o.fetchGeocode(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord, nil
}
