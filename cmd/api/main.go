package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/microblog/user-service/internal/api"
	"github.com/microblog/user-service/internal/core/service"
	mongodb "github.com/microblog/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/microblog/user-service/internal/infrastructure/db/redis"
	"github.com/microblog/user-service/internal/infrastructure/seed"
	"github.com/microblog/user-service/internal/pkg/config"
	"github.com/microblog/user-service/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect mongodb")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	userService := service.NewUserService(userRepo, cfg.BcryptCost, logg)

	if cfg.SeedDemoUsers {
		if err := seed.DemoUsers(ctx, userService, logg); err != nil {
			logg.Fatal().Err(err).Msg("failed to seed demo users")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Users:    userService,
		Throttle: redisdb.NewLoginThrottle(rdb),
		Mongo:    db,
		Redis:    rdb,
		Logger:   logg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logg.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
