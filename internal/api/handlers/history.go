package handlers

import (
	"context"
	"distance-service/internal/api/dto"
	"distance-service/internal/auth"
	"distance-service/internal/domain"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type HistoryLister interface {
	List(ctx context.Context, userID string, limit int) ([]*domain.DistanceQuery, error)
}

type HistoryHandler struct {
	Service HistoryLister
}

// List returns past calculations, newest first. Authenticated callers only see their own.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	queries, err := h.Service.List(r.Context(), auth.UserIDFromContext(r.Context()), limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list history failed")
		writeError(w, r, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	res := make([]dto.QueryResponse, 0, len(queries))
	for _, q := range queries {
		item := dto.QueryResponse{
			ID:          q.ID,
			Source:      q.Source,
			Destination: q.Destination,
			Distance:    q.DistanceKm,
			UserID:      q.UserID,
			CreatedAt:   q.CreatedAt,
		}
		if c := q.SourceCoords; c != nil {
			item.SourceCoords = &dto.CoordinatesResponse{Lat: c.Lat, Lon: c.Lon}
		}
		if c := q.DestinationCoords; c != nil {
			item.DestinationCoords = &dto.CoordinatesResponse{Lat: c.Lat, Lon: c.Lon}
		}
		res = append(res, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
