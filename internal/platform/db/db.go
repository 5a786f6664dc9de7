package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects with the given database/sql driver and verifies the
// connection. The service runs on SQLite by default ("sqlite" driver,
// file DSN) and on Postgres ("pgx" driver) when a shared dataset is
// wanted.
func Open(driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		// modernc SQLite serializes writes; a single connection avoids
		// SQLITE_BUSY under concurrent handlers.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("verify %s connection: %w", driver, err)
	}

	return conn, nil
}
