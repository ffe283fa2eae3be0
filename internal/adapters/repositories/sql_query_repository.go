package repositories

import (
	"context"
	"database/sql"
	"distance-service/internal/domain"
	"distance-service/internal/platform/obs"
	"distance-service/internal/ports"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const DefaultHistoryLimit = 50

// Postgres-backed implementation of the QueryRepository port.
type SQLQueryRepository struct{ DB *sql.DB }

func NewSQLQueryRepository(db *sql.DB) *SQLQueryRepository {
	return &SQLQueryRepository{DB: db}
}

func (s *SQLQueryRepository) Save(ctx context.Context, q *domain.DistanceQuery) (err error) {
	defer obs.Time(ctx, "queries.Save")(&err)

	if s.DB == nil {
		return errors.New("sql query repository: DB is nil")
	}
	if q == nil {
		return errors.New("save query: record is nil")
	}

	var srcLat, srcLon, dstLat, dstLon sql.NullFloat64
	if c := q.SourceCoords; c != nil {
		srcLat = sql.NullFloat64{Float64: c.Lat, Valid: true}
		srcLon = sql.NullFloat64{Float64: c.Lon, Valid: true}
	}
	if c := q.DestinationCoords; c != nil {
		dstLat = sql.NullFloat64{Float64: c.Lat, Valid: true}
		dstLon = sql.NullFloat64{Float64: c.Lon, Valid: true}
	}
	userID := sql.NullString{String: q.UserID, Valid: q.UserID != ""}

	query := `
	INSERT INTO distance_queries (
		id,
		source,
		destination,
		distance_km,
		source_lat,
		source_lon,
		destination_lat,
		destination_lon,
		user_id,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = s.DB.ExecContext(ctx, query,
		q.ID, q.Source, q.Destination, q.DistanceKm,
		srcLat, srcLon, dstLat, dstLon,
		userID, q.CreatedAt,
	)
	if err != nil {
		// user_id references a deleted account.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("save query: user %q: %w", q.UserID, domain.ErrUserNotFound)
		}
		return fmt.Errorf("save query: insert distance_queries: %w", err)
	}

	return nil
}

// Return records newest first, optionally restricted to one user.
func (s *SQLQueryRepository) List(ctx context.Context, filter ports.QueryFilter) (_ []*domain.DistanceQuery, err error) {
	defer obs.Time(ctx, "queries.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql query repository: DB is nil")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
	SELECT
		id,
		source,
		destination,
		distance_km,
		source_lat,
		source_lon,
		destination_lat,
		destination_lon,
		user_id,
		created_at
	FROM distance_queries
	`
	args := make([]any, 0, 2)
	if filter.UserID != "" {
		query += "WHERE user_id = $1\n\tORDER BY created_at DESC\n\tLIMIT $2;"
		args = append(args, filter.UserID, limit)
	} else {
		query += "ORDER BY created_at DESC\n\tLIMIT $1;"
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list queries: query distance_queries table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.DistanceQuery, 0, limit)
	for rows.Next() {
		var (
			q                              domain.DistanceQuery
			srcLat, srcLon, dstLat, dstLon sql.NullFloat64
			userID                         sql.NullString
		)
		err := rows.Scan(
			&q.ID, &q.Source, &q.Destination, &q.DistanceKm,
			&srcLat, &srcLon, &dstLat, &dstLon,
			&userID, &q.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list queries: scan row: %w", err)
		}

		if srcLat.Valid && srcLon.Valid {
			q.SourceCoords = &domain.Coordinates{Lat: srcLat.Float64, Lon: srcLon.Float64}
		}
		if dstLat.Valid && dstLon.Valid {
			q.DestinationCoords = &domain.Coordinates{Lat: dstLat.Float64, Lon: dstLon.Float64}
		}
		q.UserID = userID.String

		out = append(out, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list queries: row iteration: %w", err)
	}

	return out, nil
}
