// Command api runs the devlink HTTP API.
//
// @title        devlink API
// @version      1.0
// @description  Developer network API: accounts, profiles, posts.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/devlink/devlink-api/docs"
	"github.com/devlink/devlink-api/internal/api"
	"github.com/devlink/devlink-api/internal/core/service"
	"github.com/devlink/devlink-api/internal/infrastructure/db/mongo"
	"github.com/devlink/devlink-api/internal/infrastructure/db/redis"
	"github.com/devlink/devlink-api/internal/infrastructure/queue"
	"github.com/devlink/devlink-api/internal/pkg/config"
	"github.com/devlink/devlink-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	profiles := mongo.NewProfileRepository(db)
	posts := mongo.NewPostRepository(db)
	activities := mongo.NewActivityRepository(db)

	for _, ensure := range []func(context.Context) error{
		users.EnsureIndexes, profiles.EnsureIndexes, posts.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Activity pipeline ---
	activityService := service.NewActivityService(activities, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(ctx)

	// --- Services ---
	vault := service.NewPasswordVault(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	throttle := redis.NewLoginThrottle(rdb, cfg.Auth.MaxAttempts, cfg.Auth.AttemptWindow)

	authService := service.NewAuthService(users, vault, tokens, throttle, log)
	profileService := service.NewProfileService(profiles, posts, users, log)
	postService := service.NewPostService(posts, users, dispatcher, log)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		ProfileService: profileService,
		PostService:    postService,
		Tokens:         tokens,
		Mongo:          db,
		Redis:          rdb,
		Logger:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
