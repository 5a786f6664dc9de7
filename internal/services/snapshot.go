package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agroute-trip-service/internal/domain"
)

// SnapshotVersion is the current print snapshot schema version. Parse
// rejects any other version rather than attempting an upgrade.
const SnapshotVersion = 1

// Snapshot is the immutable, versioned export of trip + route + summary
// state handed to an external print renderer. All scalar fields are
// coerced to strings or plain ints at capture time so the payload is
// self-contained.
type Snapshot struct {
	Version     int            `json:"version"`
	GeneratedAt string         `json:"generated_at"`
	Home        SnapshotHome   `json:"home"`
	Stops       []SnapshotStop `json:"stops"`
	Legs        []SnapshotLeg  `json:"legs"`
	Totals      *SnapshotTotals `json:"totals"`
	Summary     []SnapshotSummaryRow `json:"retailer_summary"`
}

type SnapshotHome struct {
	Label string     `json:"label"`
	Zip   string     `json:"zip"`
	Coord *[2]float64 `json:"coord"` // [lon, lat], null when unresolved
}

type SnapshotStop struct {
	Idx      int    `json:"idx"`
	Label    string `json:"label"`
	Retailer string `json:"retailer"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Kind     string `json:"kind"`
	Phone    string `json:"phone"`
	Contact  string `json:"contact"`
}

type SnapshotLeg struct {
	FromLabel       string `json:"from_label"`
	ToLabel         string `json:"to_label"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

type SnapshotTotals struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

type SnapshotSummaryRow struct {
	Retailer       string   `json:"retailer"`
	TripStops      int      `json:"trip_stops"`
	TotalLocations int      `json:"total_locations"`
	States         []string `json:"states"`
	Suppliers      []string `json:"suppliers"`
	Categories     []string `json:"categories"`
}

// ParseError is returned by ParseSnapshot for unrecognized or corrupt
// payloads. Callers show "no trip data" instead of crashing.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse snapshot: " + e.Reason
}

// CaptureSnapshot projects the current trip state into a Snapshot. It is
// a pure transform with no side effects: persistence and cross-context
// transport are the caller's responsibility via a SnapshotStore.
func CaptureSnapshot(
	home *domain.Stop,
	stops []domain.Stop,
	legs []domain.RouteLeg,
	totals *domain.RouteTotals,
	summary []RetailerSummary,
	now time.Time,
) Snapshot {
	snap := Snapshot{
		Version:     SnapshotVersion,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Stops:       make([]SnapshotStop, 0, len(stops)),
		Legs:        make([]SnapshotLeg, 0, len(legs)),
		Summary:     make([]SnapshotSummaryRow, 0, len(summary)),
	}

	if home != nil {
		snap.Home = SnapshotHome{
			Label: coerce(home.Label),
			Zip:   coerce(home.Zip),
		}
		if home.Coord != nil && home.Coord.Valid() {
			snap.Home.Coord = &[2]float64{home.Coord.Lon, home.Coord.Lat}
		}
	}

	tripStopsByRetailer := make(map[string]int)
	for i, s := range stops {
		kind := string(s.Kind)
		if kind == "" {
			kind = string(domain.StopKindLocation)
		}
		snap.Stops = append(snap.Stops, SnapshotStop{
			Idx:      i,
			Label:    coerce(s.Label),
			Retailer: coerce(s.Retailer),
			Address:  coerce(s.Address),
			City:     coerce(s.City),
			State:    coerce(s.State),
			Zip:      coerce(s.Zip),
			Kind:     kind,
			Phone:    coerce(s.Phone),
			Contact:  coerce(s.Contact),
		})
		if s.Kind != domain.StopKindHome {
			tripStopsByRetailer[strings.ToLower(strings.TrimSpace(s.Retailer))]++
		}
	}

	for _, l := range legs {
		snap.Legs = append(snap.Legs, SnapshotLeg{
			FromLabel:       coerce(l.FromLabel),
			ToLabel:         coerce(l.ToLabel),
			DistanceMeters:  l.DistanceMeters,
			DurationSeconds: l.DurationSeconds,
		})
	}

	if totals != nil {
		snap.Totals = &SnapshotTotals{
			DistanceMeters:  totals.DistanceMeters,
			DurationSeconds: totals.DurationSeconds,
		}
	}

	for _, row := range summary {
		snap.Summary = append(snap.Summary, SnapshotSummaryRow{
			Retailer:       coerce(row.Retailer),
			TripStops:      tripStopsByRetailer[strings.ToLower(strings.TrimSpace(row.Retailer))],
			TotalLocations: row.Count,
			States:         copyStrings(row.States),
			Suppliers:      copyStrings(row.Suppliers),
			Categories:     copyStrings(row.Categories),
		})
	}

	return snap
}

// EncodeSnapshot renders a snapshot as its JSON wire form.
func EncodeSnapshot(snap Snapshot) (string, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(b), nil
}

// ParseSnapshot validates and decodes a raw snapshot payload. Unknown
// versions and malformed JSON yield a *ParseError, never a panic and
// never a guessed upgrade.
func ParseSnapshot(raw []byte) (Snapshot, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Snapshot{}, &ParseError{Reason: "empty payload"}
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, &ParseError{Reason: "malformed payload: " + err.Error()}
	}

	if snap.Version != SnapshotVersion {
		return Snapshot{}, &ParseError{
			Reason: fmt.Sprintf("unsupported snapshot version %d (supported: %d)", snap.Version, SnapshotVersion),
		}
	}

	return snap, nil
}

// coerce defends against upstream data quality: trims whitespace so the
// print renderer never sees padded or missing-as-space values.
func coerce(s string) string {
	return strings.TrimSpace(s)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
