package handlers

import (
	"context"
	"distance-service/internal/api/dto"
	"distance-service/internal/auth"
	"distance-service/internal/domain"
	"distance-service/internal/services"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	msgInvalidAddress = "Invalid address format. Addresses must be between 3 and 200 characters " +
		"and contain only letters, numbers, spaces, and basic punctuation."
	msgInvalidInput = "Invalid input format. Search text must be between 3 and 200 characters " +
		"and contain only letters, numbers, spaces, and basic punctuation."
	msgInvalidMetric      = "Invalid metric. Use km, miles or both."
	msgAddressNotFound    = "Address not found"
	msgInvalidCoordinates = "Invalid coordinates received from geocoding service"
)

type DistanceCalculator interface {
	Calculate(ctx context.Context, req services.CalculateRequest) (*services.CalculateResult, error)
	Suggest(ctx context.Context, input string) ([]services.Suggestion, error)
}

type DistanceHandler struct {
	Service DistanceCalculator
}

// Calculate geocodes both addresses and returns the great-circle distance between them.
func (h *DistanceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CalculateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.Service.Calculate(r.Context(), services.CalculateRequest{
		Source:      req.Source,
		Destination: req.Destination,
		Unit:        req.Metric,
		UserID:      auth.UserIDFromContext(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAddress):
			writeError(w, r, http.StatusBadRequest, msgInvalidAddress)
		case errors.Is(err, domain.ErrInvalidUnit):
			writeError(w, r, http.StatusBadRequest, msgInvalidMetric)
		case errors.Is(err, domain.ErrAddressNotFound):
			writeError(w, r, http.StatusBadRequest, msgAddressNotFound)
		case errors.Is(err, domain.ErrInvalidCoordinates):
			writeError(w, r, http.StatusBadRequest, msgInvalidCoordinates)
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, r, http.StatusUnauthorized, "account no longer exists")
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("calculate distance failed")
			writeError(w, r, http.StatusInternalServerError, "Failed to calculate distance")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateResponse{
		ID:            res.ID,
		Distance:      res.DistanceKm,
		DistanceMiles: res.DistanceMi,
		Metric:        string(res.Unit),
		Source:        endpointResponse(res.Source),
		Destination:   endpointResponse(res.Destination),
		CreatedAt:     res.CreatedAt,
	})
}

func endpointResponse(e services.Endpoint) dto.EndpointResponse {
	return dto.EndpointResponse{
		Address:     e.Address,
		Coordinates: dto.CoordinatesResponse{Lat: e.Coordinates.Lat, Lon: e.Coordinates.Lon},
	}
}

// Autocomplete returns up to five address suggestions for ?input=.
func (h *DistanceHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	suggestions, err := h.Service.Suggest(r.Context(), r.URL.Query().Get("input"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, msgInvalidInput)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("autocomplete failed")
		writeError(w, r, http.StatusInternalServerError, "Failed to fetch address suggestions")
		return
	}

	res := make([]dto.SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		res = append(res, dto.SuggestionResponse{DisplayName: s.DisplayName, Lat: s.Lat, Lon: s.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}
