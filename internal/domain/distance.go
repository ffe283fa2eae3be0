package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	EarthRadiusKm = 6371.0
	milesPerKm    = 0.621371
)

// CalculateDistance returns the great-circle distance in kilometers between
// (lat1, lon1) and (lat2, lon2), given in degrees, using the Haversine formula.
//
// Inputs are not validated; callers run ValidateCoordinates first. NaN in
// produces NaN out.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceBetween is CalculateDistance over Coordinates.
func DistanceBetween(from, to Coordinates) float64 {
	return CalculateDistance(from.Lat, from.Lon, to.Lat, to.Lon)
}

func toRadians(deg float64) float64 { return deg * (math.Pi / 180) }

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 { return km * milesPerKm }

// Unit selects which distance figures a response carries.
// Kilometers are always computed and persisted.
type Unit string

const (
	UnitKm    Unit = "km"
	UnitMiles Unit = "miles"
	UnitBoth  Unit = "both"
)

// ParseUnit maps the client's metric parameter to a Unit. Empty means km.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UnitKm, nil
	case UnitKm, UnitMiles, UnitBoth:
		return u, nil
	default:
		return "", fmt.Errorf("parse unit %q: %w", s, ErrInvalidUnit)
	}
}

// IncludesMiles reports whether responses in this unit carry a miles figure.
func (u Unit) IncludesMiles() bool { return u == UnitMiles || u == UnitBoth }
