package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agroute-trip-service/internal/ports"
)

// SQLite backed cache for per-leg travel metrics keyed by a
// "lon,lat|lon,lat" coordinate pair. Keys are formatted by the routing
// adapter with fixed precision so identical legs always hit.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// Fetch cached results for the given pair keys. Missing keys are simply
// absent from the result map.
func (s *SqliteLegCache) GetMany(ctx context.Context, keys []string) (map[string]ports.LegResult, error) {
	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.LegResult{}, nil
	}

	seen := map[string]struct{}{}
	args := make([]any, 0, len(keys))
	ph := ""
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		if ph != "" {
			ph += ","
		}
		ph += "?"
		args = append(args, k)
	}

	if len(args) == 0 {
		return map[string]ports.LegResult{}, nil
	}

	q := fmt.Sprintf(`
	SELECT
        pair,
        distance_meters,
        duration_seconds
    FROM leg_cache
    WHERE pair IN (%s);
	`, ph)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.LegResult, len(args))
	for rows.Next() {
		var pair string
		var meters, seconds int
		if err := rows.Scan(&pair, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get leg cache: scan rows: %w", err)
		}
		out[pair] = ports.LegResult{DistanceMeters: meters, DurationSeconds: seconds}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get leg cache: row iteration: %w", err)
	}

	return out, nil
}

// Store pair -> leg result mappings in the cache.
func (s *SqliteLegCache) PutMany(ctx context.Context, results map[string]ports.LegResult) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert leg cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO leg_cache (
        pair,
        distance_meters,
        duration_seconds
    )
    VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert leg cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for pair, r := range results {
		if pair == "" {
			return errors.New("insert leg cache: empty pair key")
		}

		if _, err := stmt.Exec(pair, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("insert leg cache pair=%q: %w", pair, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert leg cache commit: %w", err)
	}

	return nil
}
