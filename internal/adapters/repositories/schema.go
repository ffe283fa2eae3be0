package repositories

import (
	"context"
	"database/sql"
	"distance-service/internal/domain"
	"distance-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Initialize the Postgres database schema. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	createQueriesQuery := `
	CREATE TABLE IF NOT EXISTS distance_queries (
        id UUID PRIMARY KEY,
        source TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_km DOUBLE PRECISION NOT NULL,
        source_lat DOUBLE PRECISION,
        source_lon DOUBLE PRECISION,
        destination_lat DOUBLE PRECISION,
        destination_lon DOUBLE PRECISION,
        user_id UUID REFERENCES users(id) ON DELETE SET NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query_key TEXT PRIMARY KEY,
        results JSONB NOT NULL,
        cached_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
	`

	createHistoryIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_queries_user_created
    ON distance_queries(user_id, created_at DESC);
	`

	createRecentIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_queries_created
    ON distance_queries(created_at DESC);
	`

	statements := []string{
		createUsersQuery,
		createQueriesQuery,
		createGeocodeCacheQuery,
		createHistoryIndexQuery,
		createRecentIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type QuerySeed struct {
	Source            string     `json:"source"`
	Destination       string     `json:"destination"`
	SourceCoords      [2]float64 `json:"source_coords"`
	DestinationCoords [2]float64 `json:"destination_coords"`
	CreatedAt         *time.Time `json:"created_at"`
}

// Populate distance_queries with anonymous demo history from a JSON file.
// Seeds go through the same validation and distance function as live requests.
func SeedFromJSON(ctx context.Context, repo ports.QueryRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed queries: read %q: %w", jsonPath, err)
	}

	var data []QuerySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed queries: parse json: %w", err)
	}

	records := make([]*domain.DistanceQuery, 0, len(data))
	for i, item := range data {
		src := strings.TrimSpace(item.Source)
		dst := strings.TrimSpace(item.Destination)
		if !domain.ValidateAddress(src) || !domain.ValidateAddress(dst) {
			return 0, fmt.Errorf("seed queries: item at index %d: %w", i+1, domain.ErrInvalidAddress)
		}

		from := domain.Coordinates{Lat: item.SourceCoords[0], Lon: item.SourceCoords[1]}
		to := domain.Coordinates{Lat: item.DestinationCoords[0], Lon: item.DestinationCoords[1]}
		if !from.Valid() || !to.Valid() {
			return 0, fmt.Errorf("seed queries: item at index %d: %w", i+1, domain.ErrInvalidCoordinates)
		}

		createdAt := time.Now().UTC()
		if item.CreatedAt != nil {
			createdAt = item.CreatedAt.UTC()
		}

		records = append(records, &domain.DistanceQuery{
			ID:                uuid.NewString(),
			Source:            src,
			Destination:       dst,
			DistanceKm:        domain.DistanceBetween(from, to),
			SourceCoords:      &from,
			DestinationCoords: &to,
			CreatedAt:         createdAt,
		})
	}

	for _, q := range records {
		if err := repo.Save(ctx, q); err != nil {
			return 0, fmt.Errorf("seed queries: save %q -> %q: %w", q.Source, q.Destination, err)
		}
	}

	return len(records), nil
}
