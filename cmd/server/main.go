// Package main is the entry point for the collaborative code studio server.
//
// The main package is kept minimal — its job is to:
// 1. Read configuration (YAML file + env overrides)
// 2. Create dependencies (logger, executor)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.). This separation makes the app testable and its
// components reusable.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/collab-studio/internal/config"
	"github.com/sakif/collab-studio/internal/executor/mock"
	"github.com/sakif/collab-studio/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	// slog.New creates a structured logger; TextHandler outputs
	// human-readable lines. In production you'd raise the level to Info.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The sqlite driver won't create parent directories on its own.
	if cfg.Storage.Driver == "sqlite" || cfg.Storage.Driver == "" {
		dbDir := filepath.Dir(cfg.Storage.Path)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// Execution is mocked: fixed delay, canned output. A real sandboxed
	// engine would be constructed here instead, behind the same interface.
	exec := mock.New(cfg.Execute.Delay, logger)

	srv, err := server.New(cfg, logger, exec)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
