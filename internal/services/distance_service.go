package services

import (
	"context"
	"distance-service/internal/domain"
	"distance-service/internal/platform/obs"
	"distance-service/internal/ports"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultGeocodeDelay = time.Second
	SuggestionLimit     = 5
)

type CalculateRequest struct {
	Source      string
	Destination string
	Unit        string
	UserID      string
}

type Endpoint struct {
	Address     string
	Coordinates domain.Coordinates
}

type CalculateResult struct {
	ID          string
	DistanceKm  float64
	DistanceMi  *float64 // set only when miles were requested
	Unit        domain.Unit
	Source      Endpoint
	Destination Endpoint
	CreatedAt   time.Time
}

type Suggestion struct {
	DisplayName string
	Lat         float64
	Lon         float64
}

// DistanceService resolves two addresses and records the distance between them.
type DistanceService struct {
	Geocoder ports.Geocoder
	Queries  ports.QueryRepository
	// Pause between the source and destination lookups.
	Delay time.Duration

	wait  func(ctx context.Context, d time.Duration) error
	now   func() time.Time
	newID func() string
}

func NewDistanceService(geocoder ports.Geocoder, queries ports.QueryRepository, delay time.Duration) *DistanceService {
	if delay < 0 {
		delay = DefaultGeocodeDelay
	}
	return &DistanceService{
		Geocoder: geocoder,
		Queries:  queries,
		Delay:    delay,
		wait:     sleepCtx,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (s *DistanceService) Calculate(ctx context.Context, req CalculateRequest) (_ *CalculateResult, err error) {
	defer obs.Time(ctx, "distance.Calculate")(&err)

	if s.Geocoder == nil || s.Queries == nil {
		return nil, errors.New("calculate: service is not configured")
	}

	src := strings.TrimSpace(req.Source)
	dst := strings.TrimSpace(req.Destination)
	if !domain.ValidateAddress(src) || !domain.ValidateAddress(dst) {
		zerolog.Ctx(ctx).Warn().Str("source", src).Str("destination", dst).Msg("invalid address format")
		return nil, fmt.Errorf("calculate: %w", domain.ErrInvalidAddress)
	}

	unit, err := domain.ParseUnit(req.Unit)
	if err != nil {
		return nil, fmt.Errorf("calculate: %w", err)
	}

	srcHit, err := s.lookup(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("calculate: geocode source: %w", err)
	}

	if err := s.wait(ctx, s.Delay); err != nil {
		return nil, fmt.Errorf("calculate: wait between lookups: %w", err)
	}

	dstHit, err := s.lookup(ctx, dst)
	if err != nil {
		return nil, fmt.Errorf("calculate: geocode destination: %w", err)
	}

	from, err := domain.ParseCoordinates(srcHit.Lat, srcHit.Lon)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("lat", srcHit.Lat).Str("lon", srcHit.Lon).Msg("invalid source coordinates from geocoder")
		return nil, fmt.Errorf("calculate: source %q: %w", src, err)
	}
	to, err := domain.ParseCoordinates(dstHit.Lat, dstHit.Lon)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("lat", dstHit.Lat).Str("lon", dstHit.Lon).Msg("invalid destination coordinates from geocoder")
		return nil, fmt.Errorf("calculate: destination %q: %w", dst, err)
	}

	km := domain.DistanceBetween(from, to)

	q := &domain.DistanceQuery{
		ID:                s.newID(),
		Source:            src,
		Destination:       dst,
		DistanceKm:        km,
		SourceCoords:      &from,
		DestinationCoords: &to,
		UserID:            req.UserID,
		CreatedAt:         s.now(),
	}
	if err := s.Queries.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("calculate: persist query: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("source", src).
		Str("destination", dst).
		Float64("distance_km", km).
		Msg("distance calculated")

	res := &CalculateResult{
		ID:          q.ID,
		DistanceKm:  km,
		Unit:        unit,
		Source:      Endpoint{Address: src, Coordinates: from},
		Destination: Endpoint{Address: dst, Coordinates: to},
		CreatedAt:   q.CreatedAt,
	}
	if unit.IncludesMiles() {
		mi := domain.KmToMiles(km)
		res.DistanceMi = &mi
	}

	return res, nil
}

// Look up the best match for address. No match is ErrAddressNotFound.
func (s *DistanceService) lookup(ctx context.Context, address string) (ports.GeocodeResult, error) {
	hits, err := s.Geocoder.Search(ctx, address, 1)
	if err != nil {
		return ports.GeocodeResult{}, err
	}
	if len(hits) == 0 {
		zerolog.Ctx(ctx).Warn().Str("address", address).Msg("address not found")
		return ports.GeocodeResult{}, fmt.Errorf("%q: %w", address, domain.ErrAddressNotFound)
	}
	return hits[0], nil
}

// Suggest returns up to SuggestionLimit candidate places for a partial address.
// Candidates with unusable coordinates are dropped.
func (s *DistanceService) Suggest(ctx context.Context, input string) (_ []Suggestion, err error) {
	defer obs.Time(ctx, "distance.Suggest")(&err)

	if s.Geocoder == nil {
		return nil, errors.New("suggest: service is not configured")
	}

	input = strings.TrimSpace(input)
	if !domain.ValidateAddress(input) {
		return nil, fmt.Errorf("suggest: %w", domain.ErrInvalidInput)
	}

	hits, err := s.Geocoder.Search(ctx, input, SuggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest: search %q: %w", input, err)
	}

	out := make([]Suggestion, 0, len(hits))
	for _, h := range hits {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(h.Lat), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(h.Lon), 64)
		if latErr != nil || lonErr != nil || !domain.ValidateCoordinates(lat, lon) {
			continue
		}
		out = append(out, Suggestion{DisplayName: h.DisplayName, Lat: lat, Lon: lon})
		if len(out) == SuggestionLimit {
			break
		}
	}

	return out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
