// Package main is the entry point for Mazecrawl.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/samdwyer/mazecrawl/internal/config"
	"github.com/samdwyer/mazecrawl/internal/game"
	"github.com/samdwyer/mazecrawl/internal/logging"
	"github.com/samdwyer/mazecrawl/internal/save"
	"github.com/samdwyer/mazecrawl/internal/storage"
	"github.com/samdwyer/mazecrawl/internal/storage/file"
	"github.com/samdwyer/mazecrawl/internal/storage/memory"
	"github.com/samdwyer/mazecrawl/internal/storage/sqlite"
	"github.com/samdwyer/mazecrawl/internal/telemetry"
	"github.com/samdwyer/mazecrawl/internal/ui"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "mazecrawl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logFile, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Telemetry failures are not fatal; the game runs without traces.
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry(), logger)
	if err != nil {
		logger.Warn("telemetry setup failed", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(logger, store)

	saves := save.NewService(store, save.WithSlotKey(cfg.SaveSlot), save.WithLogger(logger))

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	g := game.New(screen, saves, game.WithLogger(logger))
	defer g.Close()

	// Wake the event loop so it notices the cancellation.
	go func() {
		<-ctx.Done()
		screen.Interrupt()
	}()

	logger.Info("session started", "storage", cfg.StorageDriver, "slot", saves.SlotKey())
	return g.Run(ctx)
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverFile:
		s, err := file.Open(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func closeQuietly(logger *slog.Logger, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("close", "error", err)
	}
}
