package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ValidateCoordinates reports whether lat/lon are finite numbers inside
// [-90, 90] and [-180, 180]. The bounds are inclusive.
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}

	if lat < -90 || lat > 90 {
		return false
	}

	if lon < -180 || lon > 180 {
		return false
	}

	return true
}

// Valid reports whether c passes ValidateCoordinates.
func (c Coordinates) Valid() bool { return ValidateCoordinates(c.Lat, c.Lon) }

// ParseCoordinates converts the string form returned by geocoders into
// validated Coordinates.
func ParseCoordinates(lat, lon string) (Coordinates, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: latitude %q: %w", lat, ErrInvalidCoordinates)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: longitude %q: %w", lon, ErrInvalidCoordinates)
	}

	if !ValidateCoordinates(la, lo) {
		return Coordinates{}, fmt.Errorf("parse coordinates: (%v, %v) out of range: %w", la, lo, ErrInvalidCoordinates)
	}

	return Coordinates{Lat: la, Lon: lo}, nil
}
