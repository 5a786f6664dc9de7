package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const seedFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-92.8, 41.6]},
      "properties": {
        "ID": "loc-1",
        "Name": "Heartland Sully",
        "Retailer": "Heartland Co-op",
        "Category": "Agronomy",
        "Address": "801 3rd St",
        "City": "Sully",
        "State": "ia",
        "Zip": 50251,
        "Suppliers": "Helena, CHS, helena"
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-200.0, 41.6]},
      "properties": {"Name": "Bad Longitude", "Retailer": "X"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-93.5]},
      "properties": {"Name": "Truncated Geometry", "Retailer": "X"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-93.6, 41.5]},
      "properties": {"Name": "Key Coop Roland", "Retailer": "Key Cooperative", "Category": "Grain", "State": "IA"}
    }
  ]
}`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSeedFromGeoJSONExcludesInvalidCoordinates(t *testing.T) {
	db := openTestDB(t)

	path := filepath.Join(t.TempDir(), "locations.geojson")
	if err := os.WriteFile(path, []byte(seedFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	inserted, excluded, err := SeedFromGeoJSON(db, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}
	if excluded != 2 {
		t.Fatalf("excluded = %d, want 2", excluded)
	}

	repo := NewSqliteLocationRepository(db)
	locs, err := repo.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("locations = %d, want 2", len(locs))
	}

	var heartland bool
	for _, l := range locs {
		if l.ID != "loc-1" {
			continue
		}
		heartland = true
		if l.State != "IA" {
			t.Fatalf("state = %q, want normalized IA", l.State)
		}
		if l.Zip != "50251" {
			t.Fatalf("zip = %q, want coerced 50251", l.Zip)
		}
		if len(l.Suppliers) != 2 {
			t.Fatalf("suppliers = %v, want case-insensitive dedupe to [Helena CHS]", l.Suppliers)
		}
		if !l.Coord.Valid() {
			t.Fatal("stored coordinates must be valid")
		}
	}
	if !heartland {
		t.Fatal("loc-1 not found")
	}

	// Features without a generated ID still get a stable primary key.
	for _, l := range locs {
		if l.ID == "" {
			t.Fatal("every location must carry an ID")
		}
	}
}
