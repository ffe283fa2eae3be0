package ports

import "context"

// One candidate returned by a geocoding service. Lat and Lon are kept in the
// service's string form; the core parses and validates them.
type GeocodeResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Contract for resolving free-text addresses into candidate coordinates.
type Geocoder interface {
	// Return up to limit candidates for query, best match first.
	// limit <= 0 leaves the limit to the service. An empty slice means no match.
	Search(ctx context.Context, query string, limit int) ([]GeocodeResult, error)
}
