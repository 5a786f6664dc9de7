package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"agroute-trip-service/internal/adapters/cache"
	"agroute-trip-service/internal/adapters/repositories"
	"agroute-trip-service/internal/adapters/routing"
	"agroute-trip-service/internal/adapters/snapshotstore"
	"agroute-trip-service/internal/api"
	"agroute-trip-service/internal/platform/db"
	"agroute-trip-service/internal/ports"
	"agroute-trip-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, ORS, Redis) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := getEnv("DB_DRIVER", "sqlite")
	dsn := getEnv("DB_DSN", "data/agroute.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/locations.geojson")
	port := getEnv("PORT", "8080")

	conn, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed the location dataset on startup.
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteLocationRepository(conn)
	locations, err := repo.ListLocations(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("dataset loaded locations=%d", len(locations))

	session := services.NewSession(locations, services.DefaultFilterPolicy())

	provider, geocoder := buildRoutingProvider(conn)
	store := buildSnapshotStore()

	router := api.NewRouter(session, provider, geocoder, store)

	// Timeouts are tuned for cold-cache leg computation (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	inserted, excluded, err := repositories.SeedFromGeoJSON(conn, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded locations inserted=%d excluded=%d", inserted, excluded)
	if excluded > 0 {
		log.Printf("excluded features lacked a valid coordinate or label; they will not appear on the map or in summaries")
	}

	return nil
}

// buildRoutingProvider returns the ORS-backed leg provider when an API
// key is configured, with persistent SQLite caches to avoid repeated
// geocode/directions calls. Without a key the straight-line mock keeps
// routing usable for local development.
func buildRoutingProvider(conn *sql.DB) (ports.RouteLegProvider, ports.Geocoder) {
	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if orsKey == "" {
		log.Println("ORS_API_KEY not set; using straight-line leg estimates")
		return routing.NewMockLegProvider(), nil
	}

	legCache := cache.NewSqliteLegCache(conn)
	geocodeCache := cache.NewSqliteGeocodeCache(conn)
	provider, err := routing.NewORSLegProvider(orsKey, legCache, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}
	return provider, provider
}

// buildSnapshotStore picks Redis when configured so print snapshots
// survive process boundaries, and falls back to the in-process store.
func buildSnapshotStore() ports.SnapshotStore {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Println("REDIS_ADDR not set; snapshots stay in-process")
		return snapshotstore.NewMemorySnapshotStore()
	}

	store := snapshotstore.NewRedisSnapshotStore(addr, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Fatal(err)
	}
	return store
}
