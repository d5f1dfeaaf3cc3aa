package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/usermgmt/user-management-api/internal/api"
	"github.com/usermgmt/user-management-api/internal/infrastructure/config"
	mongodb "github.com/usermgmt/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/usermgmt/user-management-api/internal/infrastructure/db/redis"
	"github.com/usermgmt/user-management-api/pkg/logger"

	_ "github.com/usermgmt/user-management-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title           User Management API
// @version         1.0
// @description     User-account CRUD with HTTP Basic authentication and role-based access control.
//
// @securityDefinitions.basic BasicAuth
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisdb.ConnectOptional(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("redis not configured, listing cache disabled")
	} else {
		defer rdb.Close()
	}

	e := api.NewRouter(db, rdb, cfg)

	go func() {
		log.Info().Str("port", cfg.Port).Str("base_path", cfg.BasePath).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server stopped")
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
