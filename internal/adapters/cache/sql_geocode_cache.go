package cache

import (
	"context"
	"database/sql"
	"distance-service/internal/platform/obs"
	"distance-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLGeocodeCache is a SQL-backed cache mapping normalized queries to
// geocoder results. Entries older than TTL count as misses.
type SQLGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLGeocodeCache(db *sql.DB, ttl time.Duration) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, TTL: ttl}
}

// Fetch cached results for key.
func (s *SQLGeocodeCache) Get(
	ctx context.Context,
	key string,
) (_ []ports.GeocodeResult, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get geocode cache: key must not be empty")
	}

	q := `
	SELECT results, cached_at
    FROM geocode_cache
    WHERE query_key = $1;
	`

	var payload []byte
	var cachedAt time.Time
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(cachedAt) > s.TTL {
		return nil, false, nil
	}

	var results []ports.GeocodeResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, false, fmt.Errorf("get geocode cache: decode results: %w", err)
	}

	return results, true, nil
}

// Store results under key, replacing any previous entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, key string, results []ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert geocode cache: empty key")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode results: %w", err)
	}

	q := `
	INSERT INTO geocode_cache (query_key, results, cached_at)
    VALUES ($1, $2, NOW())
	ON CONFLICT (query_key) DO UPDATE
	SET results = EXCLUDED.results,
		cached_at = EXCLUDED.cached_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
