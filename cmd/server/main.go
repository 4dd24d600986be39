package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/voicedeck/recorder-api/internal/api"
	"github.com/voicedeck/recorder-api/internal/core/ports"
	"github.com/voicedeck/recorder-api/internal/infrastructure/config"
	"github.com/voicedeck/recorder-api/internal/infrastructure/db/migrate"
	"github.com/voicedeck/recorder-api/internal/infrastructure/db/postgres"
	redisdb "github.com/voicedeck/recorder-api/internal/infrastructure/db/redis"
	"github.com/voicedeck/recorder-api/internal/infrastructure/session"
	"github.com/voicedeck/recorder-api/internal/infrastructure/storage"
	"github.com/voicedeck/recorder-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Voice Recorder API
// @version      1.0
// @description  Record, store and manage voice memos.
// @BasePath     /
func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Postgres.DSN); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	var store ports.ObjectStorage
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Store(ctx, cfg.Storage.S3)
	case "local":
		store, err = storage.NewLocalDisk(cfg.Storage.LocalDir)
	default:
		log.Fatal().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("storage initialisation failed")
	}

	sessions := session.NewRedisStore(rdb, cfg.Session.TTL)

	e := api.NewRouter(cfg, log, pool, rdb, store, sessions)

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Backend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
