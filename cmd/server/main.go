package main

import (
	"context"
	"database/sql"
	"distance-service/internal/adapters/cache"
	"distance-service/internal/adapters/geocoding"
	"distance-service/internal/adapters/repositories"
	"distance-service/internal/api"
	"distance-service/internal/auth"
	"distance-service/internal/config"
	"distance-service/internal/platform/db"
	"distance-service/internal/platform/obs"
	"distance-service/internal/ports"
	"distance-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Nominatim, Redis) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := obs.NewLogger(config.Get("APP_ENV", "development"), "info")
		boot.Fatal().Err(err).Msg("load config")
	}

	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	if envErr != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := repositories.InitSchema(ctx, database); err != nil {
		return err
	}

	geocoder, closeGeocoder, err := buildGeocoder(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer closeGeocoder()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	queries := repositories.NewSQLQueryRepository(database)
	users := repositories.NewSQLUserRepository(database)

	router := api.NewRouter(api.Deps{
		Logger:         logger,
		Distance:       services.NewDistanceService(geocoder, queries, cfg.GeocodeDelay),
		History:        services.NewHistoryService(queries),
		Accounts:       services.NewAccountService(users, tokens),
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Write timeout covers two sequential geocoder calls plus the pause between them.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2*cfg.GeocodeTimeout + cfg.GeocodeDelay + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("geocoder", cfg.Geocoder).Str("cache", cfg.GeocodeCache).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildGeocoder selects the upstream geocoder and wraps it with the configured cache.
// The returned func releases cache resources.
func buildGeocoder(ctx context.Context, cfg *config.Config, database *sql.DB) (ports.Geocoder, func(), error) {
	var upstream ports.Geocoder
	switch cfg.Geocoder {
	case config.GeocoderMock:
		upstream = geocoding.NewMockGeocoder(geocoding.DefaultMockPlaces)
	default:
		g, err := geocoding.NewNominatimGeocoder(cfg.NominatimURL, cfg.GeocodeTimeout)
		if err != nil {
			return nil, nil, err
		}
		upstream = g
	}

	noop := func() {}
	switch cfg.GeocodeCache {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Close() }
		return geocoding.NewCachedGeocoder(upstream, cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL)), closeFn, nil
	case config.CachePostgres:
		return geocoding.NewCachedGeocoder(upstream, cache.NewSQLGeocodeCache(database, cfg.GeocodeCacheTTL)), noop, nil
	default:
		return upstream, noop, nil
	}
}
