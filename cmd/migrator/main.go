package main

import (
	"log/slog"
	"os"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/migrations"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load environment", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stderr)

	version, err := database.Migrate(migrations.FS)
	if err != nil {
		logger.Error("failed to migrate db", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migration successful", slog.Uint64("version", uint64(version)))
}
