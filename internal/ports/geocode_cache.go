package ports

import "context"

// Port: a boundary for caching geocoder answers by normalized query key.
type GeocodeCache interface {
	// Return cached results for key; ok is false on a miss.
	Get(ctx context.Context, key string) (results []GeocodeResult, ok bool, err error)
	// Store results under key.
	Put(ctx context.Context, key string, results []GeocodeResult) error
}
