package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/migrations"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load environment", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stderr)

	if err := config.ConfigureEngineLog(mines.Log); err != nil {
		logger.Error("failed to configure engine log", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(logger, migrations.FS)

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}
