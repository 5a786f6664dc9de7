package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"agroute-trip-service/internal/domain"
	"agroute-trip-service/internal/platform/obs"
	"agroute-trip-service/internal/ports"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Routes []struct {
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"segments"`
	} `json:"routes"`
}

// fetchDirections retrieves per-segment distance and duration for an
// ordered coordinate sequence using the OpenRouteService directions
// endpoint. ORS returns one segment per consecutive waypoint pair.
func (o *ORSLegProvider) fetchDirections(
	ctx context.Context,
	coords []domain.Coordinates,
) (_ []ports.LegResult, err error) {
	defer obs.Time(ctx, "ors directions")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(coords))
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  locations,
		Instructions: false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) != 1 {
		return nil, fmt.Errorf("expected 1 route; got %d", len(dr.Routes))
	}

	segments := dr.Routes[0].Segments
	if len(segments) != len(coords)-1 {
		return nil, fmt.Errorf(
			"segment count does not match coordinate pairs: segments=%d coordinates=%d",
			len(segments), len(coords),
		)
	}

	out := make([]ports.LegResult, 0, len(segments))
	for _, s := range segments {
		// ORS returns float metrics; round to nearest integer for domain consistency.
		out = append(out, ports.LegResult{
			DistanceMeters:  int(math.Round(s.Distance)),
			DurationSeconds: int(math.Round(s.Duration)),
		})
	}

	return out, nil
}
