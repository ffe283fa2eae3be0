package ports

import (
	"context"
	"distance-service/internal/domain"
)

// Narrows a history listing. An empty UserID lists every record.
type QueryFilter struct {
	UserID string
	Limit  int
}

// Port: a boundary for storing and retrieving DistanceQuery records.
type QueryRepository interface {
	// Durably store a new record.
	Save(ctx context.Context, q *domain.DistanceQuery) error
	// Retrieve records ordered by creation time, newest first.
	List(ctx context.Context, filter QueryFilter) ([]*domain.DistanceQuery, error)
}
