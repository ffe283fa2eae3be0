package main

import (
	"context"
	"database/sql"
	"distance-service/internal/adapters/repositories"
	"distance-service/internal/config"
	"distance-service/internal/platform/db"
	"distance-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	envErr := godotenv.Load()
	logger := obs.NewLogger(config.Get("APP_ENV", "development"), config.Get("LOG_LEVEL", "info"))
	if envErr != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := strings.TrimSpace(config.Get("DATABASE_URL", ""))
	if databaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), time.Minute)
	defer cancel()

	// SEED_PATH=- only initializes the schema.
	seedPath := config.Get("SEED_PATH", "data/seeds/queries.json")
	if err := initAndSeed(ctx, database, seedPath); err != nil {
		logger.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, database *sql.DB, seedPath string) error {
	logger := zerolog.Ctx(ctx)

	logger.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return err
	}
	logger.Info().Msg("schema ready")

	if seedPath == "-" {
		return nil
	}

	logger.Info().Str("path", seedPath).Msg("seeding distance history")
	n, err := repositories.SeedFromJSON(ctx, repositories.NewSQLQueryRepository(database), seedPath)
	if err != nil {
		return err
	}
	logger.Info().Int("records", n).Msg("seeding complete")

	return nil
}
