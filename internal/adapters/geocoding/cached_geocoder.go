package geocoding

import (
	"context"
	"distance-service/internal/ports"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// CachedGeocoder serves repeated queries from a GeocodeCache before falling
// through to the wrapped Geocoder. Cache errors are logged, never returned.
// Empty result sets are not cached.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

// CacheKey collapses whitespace and case so equivalent queries share an entry.
func CacheKey(query string, limit int) string {
	norm := strings.ToLower(strings.Join(strings.Fields(query), " "))
	return strconv.Itoa(limit) + "|" + norm
}

func (c *CachedGeocoder) Search(ctx context.Context, query string, limit int) ([]ports.GeocodeResult, error) {
	key := CacheKey(query, limit)
	logger := zerolog.Ctx(ctx)

	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
	} else if ok {
		return cached, nil
	}

	results, err := c.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if len(results) > 0 {
		if err := c.cache.Put(ctx, key, results); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
		}
	}

	return results, nil
}
