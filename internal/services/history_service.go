package services

import (
	"context"
	"distance-service/internal/domain"
	"distance-service/internal/ports"
	"errors"
	"fmt"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

type HistoryService struct {
	Queries ports.QueryRepository
}

func NewHistoryService(queries ports.QueryRepository) *HistoryService {
	return &HistoryService{Queries: queries}
}

// List returns past calculations newest first. With a userID only that user's
// records are returned. limit <= 0 selects the default and is capped at MaxHistoryLimit.
func (s *HistoryService) List(ctx context.Context, userID string, limit int) ([]*domain.DistanceQuery, error) {
	if s.Queries == nil {
		return nil, errors.New("list history: repository is nil")
	}

	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	out, err := s.Queries.List(ctx, ports.QueryFilter{UserID: userID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return out, nil
}
