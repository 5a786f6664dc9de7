package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"agroute-trip-service/internal/domain"
)

// Initialize the database schema. Statements are portable across SQLite
// and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		retailer TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT '',
		suppliers TEXT NOT NULL DEFAULT '[]',
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
        pair TEXT PRIMARY KEY,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_state_retailer
    ON locations(state, retailer);
	`

	statements := []string{
		createLocationsQuery,
		createGeocodeCacheQuery,
		createLegCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type geoJSONFeature struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// SeedFromGeoJSON populates the locations table from the ingestion
// pipeline's GeoJSON output (Point features with string properties,
// [lon, lat] coordinate order).
//
// Features without a valid in-range coordinate are skipped; the returned
// excluded count makes that data quality loss reportable without
// per-record errors.
func SeedFromGeoJSON(db *sql.DB, jsonPath string) (inserted, excluded int, err error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, 0, fmt.Errorf("seed locations: read %q: %w", jsonPath, err)
	}

	var fc geoJSONCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return 0, 0, fmt.Errorf("seed locations: parse geojson: %w", err)
	}
	if !strings.EqualFold(fc.Type, "FeatureCollection") {
		return 0, 0, fmt.Errorf("seed locations: unexpected geojson type %q", fc.Type)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO locations (
		location_id, label, retailer, category, address, city, state, zip,
		phone, contact, suppliers, lon, lat
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range fc.Features {
		coord, ok := featureCoord(f)
		if !ok {
			excluded++
			continue
		}

		prop := func(key string) string { return stringProp(f.Properties, key) }

		label := prop("Name")
		if label == "" {
			label = prop("Long Name")
		}
		if label == "" {
			excluded++
			continue
		}

		id := prop("ID")
		if id == "" {
			id = uuid.NewString()
		}

		suppliers := domain.NormalizeSuppliers(splitSuppliers(prop("Suppliers")))
		suppliersJSON, err := json.Marshal(suppliers)
		if err != nil {
			return inserted, excluded, fmt.Errorf("seed locations: marshal suppliers for %q: %w", label, err)
		}

		_, err = stmt.Exec(
			id,
			label,
			prop("Retailer"),
			prop("Category"),
			prop("Address"),
			prop("City"),
			strings.ToUpper(prop("State")),
			prop("Zip"),
			prop("Phone"),
			prop("Contact"),
			string(suppliersJSON),
			coord.Lon,
			coord.Lat,
		)
		if err != nil {
			return inserted, excluded, fmt.Errorf("seed locations: insert %q: %w", label, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, excluded, fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return inserted, excluded, nil
}

func featureCoord(f geoJSONFeature) (domain.Coordinates, bool) {
	if !strings.EqualFold(f.Geometry.Type, "Point") || len(f.Geometry.Coordinates) != 2 {
		return domain.Coordinates{}, false
	}
	coord := domain.Coordinates{
		Lon: f.Geometry.Coordinates[0],
		Lat: f.Geometry.Coordinates[1],
	}
	return coord, coord.Valid()
}

// stringProp coerces a GeoJSON property to a trimmed string. The
// ingestion pipeline stringifies everything, but hand-edited files may
// carry raw numbers.
func stringProp(props map[string]any, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

func splitSuppliers(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})
}
