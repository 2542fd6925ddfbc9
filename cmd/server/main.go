package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bookinglab/admin-portal/internal/api"
	"github.com/bookinglab/admin-portal/internal/api/metrics"
	"github.com/bookinglab/admin-portal/internal/core/ports"
	"github.com/bookinglab/admin-portal/internal/infrastructure/config"
	"github.com/bookinglab/admin-portal/internal/infrastructure/db/mongo"
	"github.com/bookinglab/admin-portal/internal/infrastructure/db/redis"
	"github.com/bookinglab/admin-portal/internal/infrastructure/memory"
	"github.com/bookinglab/admin-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongo.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin index creation failed")
	}
	if err := mongo.NewScheduleRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("schedule index creation failed")
	}

	var sessions ports.SessionStore
	var rdb *goredis.Client
	switch cfg.Session.Backend {
	case "redis":
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		sessions = redis.NewSessionStore(rdb, 2*cfg.Session.Timeout)
	default:
		store := memory.NewSessionStore()
		store.StartJanitor(ctx, time.Minute, 2*cfg.Session.Timeout)
		metrics.RegisterActiveSessions(func() float64 { return float64(store.Len()) })
		sessions = store
	}

	e := api.NewRouter(db, rdb, sessions, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("server starting")
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
