package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/distance")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, GeocoderNominatim, cfg.Geocoder)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimURL)
	assert.Equal(t, time.Second, cfg.GeocodeDelay)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, CacheNone, cfg.GeocodeCache)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GEOCODER", "MOCK")
	t.Setenv("NOMINATIM_URL", "http://nominatim.local/")
	t.Setenv("GEOCODE_DELAY", "250ms")
	t.Setenv("GEOCODE_CACHE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, GeocoderMock, cfg.Geocoder)
	assert.Equal(t, "http://nominatim.local", cfg.NominatimURL)
	assert.Equal(t, 250*time.Millisecond, cfg.GeocodeDelay)
	assert.Equal(t, CacheRedis, cfg.GeocodeCache)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequired(t)
	t.Setenv("GEOCODE_DELAY", "soon")
	t.Setenv("GEOCODE_CACHE", "memcached")
	t.Setenv("REDIS_DB", "first")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_DELAY")
	assert.Contains(t, err.Error(), "GEOCODE_CACHE")
	assert.Contains(t, err.Error(), "REDIS_DB")
}
