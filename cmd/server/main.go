package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/guilliammrst/enrollment-api/internal/api"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
	"github.com/guilliammrst/enrollment-api/internal/core/service"
	"github.com/guilliammrst/enrollment-api/internal/infrastructure/config"
	memorydb "github.com/guilliammrst/enrollment-api/internal/infrastructure/db/memory"
	mongodb "github.com/guilliammrst/enrollment-api/internal/infrastructure/db/mongo"
	redisdb "github.com/guilliammrst/enrollment-api/internal/infrastructure/db/redis"
	"github.com/guilliammrst/enrollment-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	}

	switch cfg.StoreDriver {
	case "memory":
		store := memorydb.NewStore()
		deps.Users = store.Users()
		deps.Courses = store.Courses()
		deps.Enrollments = store.Enrollments()
		log.Warn().Msg("using in-memory store, data will not survive a restart")
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		store := mongodb.NewStore(db)
		if err := store.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize store indexes")
		}
		deps.Users = store.Users()
		deps.Courses = store.Courses()
		deps.Enrollments = store.Enrollments()
		deps.Mongo = db
	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}

	var lockout ports.LoginLockout
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login lockout disabled")
		} else {
			defer rdb.Close()
			lockout = redisdb.NewLockout(rdb)
			deps.Redis = rdb
		}
	}
	deps.Lockout = lockout

	seeder := service.NewSeeder(deps.Users, deps.Courses, deps.Enrollments, service.SeedConfig{
		AdminEmail:      cfg.Seed.AdminEmail,
		AdminPassword:   cfg.Seed.AdminPassword,
		StudentEmail:    cfg.Seed.StudentEmail,
		StudentPassword: cfg.Seed.StudentPassword,
	}, log)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed store")
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
