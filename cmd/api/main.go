package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"traveladdicts/internal/app"
	"traveladdicts/internal/cache"
	"traveladdicts/internal/config"
	"traveladdicts/internal/database"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/modules/media"
	"traveladdicts/internal/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.AppEnv, cfg.LogLevel))
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var store cache.Store = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		store = rc
	}

	var assets media.Storage
	if cfg.CloudinaryURL != "" {
		cs, err := media.NewCloudinaryStorage(cfg.CloudinaryURL)
		if err != nil {
			slog.Error("cloudinary unavailable", "error", err)
			os.Exit(1)
		}
		assets = cs
	}

	a, err := app.New(cfg, app.Deps{
		DB:      db,
		Cache:   store,
		GraphQL: graphql.New(cfg.GraphQLURL, graphql.WithTimeout(cfg.GraphQLTimeout)),
		Assets:  assets,
	})
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
