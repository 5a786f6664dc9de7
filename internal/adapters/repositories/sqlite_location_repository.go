package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"agroute-trip-service/internal/domain"
)

// SQLite-backed implementation of the LocationRepository port.
type SqliteLocationRepository struct{ DB *sql.DB }

func NewSqliteLocationRepository(db *sql.DB) *SqliteLocationRepository {
	return &SqliteLocationRepository{DB: db}
}

// Return all locations stored in the database. Rows are inserted only
// after coordinate validation, so every returned location is routable.
func (s *SqliteLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite location repository: DB is nil")
	}

	query := `
	SELECT
		location_id,
		label,
		retailer,
		category,
		address,
		city,
		state,
		zip,
		phone,
		contact,
		suppliers,
		lon,
		lat
	FROM locations
	ORDER BY location_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 256)
	for rows.Next() {
		var loc domain.Location
		var suppliersJSON string
		err := rows.Scan(
			&loc.ID,
			&loc.Label,
			&loc.Retailer,
			&loc.Category,
			&loc.Address,
			&loc.City,
			&loc.State,
			&loc.Zip,
			&loc.Phone,
			&loc.Contact,
			&suppliersJSON,
			&loc.Coord.Lon,
			&loc.Coord.Lat,
		)
		if err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}

		if suppliersJSON != "" {
			var suppliers []string
			if err := json.Unmarshal([]byte(suppliersJSON), &suppliers); err != nil {
				return nil, fmt.Errorf("list locations: parse suppliers for %q: %w", loc.ID, err)
			}
			loc.Suppliers = domain.NormalizeSuppliers(suppliers)
		}

		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}
