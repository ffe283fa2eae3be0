package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	Geocoder        string
	NominatimURL    string
	GeocodeDelay    time.Duration
	GeocodeTimeout  time.Duration
	GeocodeCache    string
	GeocodeCacheTTL time.Duration

	Redis RedisConfig

	AllowedOrigins []string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

const (
	GeocoderNominatim = "nominatim"
	GeocoderMock      = "mock"

	CacheNone     = "none"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:         Get("PORT", "8080"),
		Env:          Get("APP_ENV", "development"),
		LogLevel:     Get("LOG_LEVEL", "info"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Geocoder:     strings.ToLower(Get("GEOCODER", GeocoderNominatim)),
		NominatimURL: strings.TrimRight(Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocodeCache: strings.ToLower(Get("GEOCODE_CACHE", CacheNone)),
		Redis: RedisConfig{
			Addr:     Get("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		AllowedOrigins: splitList(Get("ALLOWED_ORIGINS", "*")),
	}

	cfg.JWTTTL = getDuration("JWT_TTL", 24*time.Hour, &errs)
	cfg.GeocodeDelay = getDuration("GEOCODE_DELAY", time.Second, &errs)
	cfg.GeocodeTimeout = getDuration("GEOCODE_TIMEOUT", 10*time.Second, &errs)
	cfg.GeocodeCacheTTL = getDuration("GEOCODE_CACHE_TTL", 24*time.Hour, &errs)
	cfg.Redis.DB = getInt("REDIS_DB", 0, &errs)

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	switch cfg.Geocoder {
	case GeocoderNominatim, GeocoderMock:
	default:
		errs = append(errs, fmt.Errorf("GEOCODER must be %q or %q, got %q", GeocoderNominatim, GeocoderMock, cfg.Geocoder))
	}

	switch cfg.GeocodeCache {
	case CacheNone, CacheRedis, CachePostgres:
	default:
		errs = append(errs, fmt.Errorf("GEOCODE_CACHE must be one of none, redis, postgres, got %q", cfg.GeocodeCache))
	}

	if cfg.GeocodeDelay < 0 {
		errs = append(errs, errors.New("GEOCODE_DELAY must not be negative"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("load config: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func getInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
