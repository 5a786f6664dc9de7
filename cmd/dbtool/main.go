package main

import (
	"context"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"agroute-trip-service/internal/adapters/repositories"
	"agroute-trip-service/internal/platform/db"
)

// dbtool initializes the schema and loads a GeoJSON location seed
// outside the server process. Useful for preparing a shared Postgres
// dataset or rebuilding a local SQLite file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := getEnv("DB_DRIVER", "sqlite")
	dsn := getEnv("DB_DSN", "data/agroute.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/locations.geojson")

	conn, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding locations from %s...", seedPath)
	inserted, excluded, err := repositories.SeedFromGeoJSON(conn, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. inserted=%d excluded=%d", inserted, excluded)

	repo := repositories.NewSqliteLocationRepository(conn)
	locs, err := repo.ListLocations(context.Background())
	if err != nil {
		log.Fatalf("verify seed failed: %v", err)
	}
	log.Printf("Dataset now holds %d locations.", len(locs))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
