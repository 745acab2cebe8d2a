package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/fullstacktime/project-tracker/internal/api"
	"github.com/fullstacktime/project-tracker/internal/infrastructure/db/postgres"
	"github.com/fullstacktime/project-tracker/internal/infrastructure/db/redis"
	"github.com/fullstacktime/project-tracker/internal/pkg/config"
	"github.com/fullstacktime/project-tracker/internal/pkg/token"
	"github.com/fullstacktime/project-tracker/pkg/logger"
)

// @title           Project Tracker API
// @version         1.0
// @description     Multi-tenant project tracking with role-based access.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			logg.Error().Err(err).Msg("closing postgres failed")
		}
	}()

	if err := postgres.Migrate(db); err != nil {
		logg.Fatal().Err(err).Msg("schema migration failed")
	}

	// Redis only backs refresh-token revocation and the readiness probe;
	// the API stays up without it.
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		logg.Warn().Err(err).Msg("redis unavailable, token revocation disabled")
		rdb = nil
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	e := api.NewRouter(db, rdb, tokens, logg)

	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("project tracker listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
}
