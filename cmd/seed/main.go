package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"traveladdicts/internal/config"
	"traveladdicts/internal/database"
	"traveladdicts/internal/modules/settings"
	"traveladdicts/internal/pkg/logger"
	"traveladdicts/internal/repository"
)

// seed writes the default site settings. Existing settings are kept unless -force is set.
func main() {
	force := flag.Bool("force", false, "overwrite existing settings with the defaults")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.AppEnv, cfg.LogLevel))

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo := repository.NewSettingsRepository(db)

	_, _, err = repo.Get(ctx, settings.StoreKey)
	switch {
	case err == nil && !*force:
		slog.Info("settings already present, nothing to do (use -force to reset)")
		return
	case err != nil && !errors.Is(err, repository.ErrSettingsNotFound):
		slog.Error("failed to read settings", "error", err)
		os.Exit(1)
	}

	st, err := settings.NewService(repo, nil).Reset(ctx)
	if err != nil {
		slog.Error("failed to write default settings", "error", err)
		os.Exit(1)
	}
	slog.Info("default settings written", "version", st.Version, "site", st.General.SiteName)
}
