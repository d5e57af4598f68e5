// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled:
//
//	config → store (sqlite or memory) → SessionService → handlers → routes
//
// Each layer only receives what it needs: the service gets the repository
// interface (not the concrete store), handlers get the service (not the
// repository), and nothing below this package knows which backing was chosen.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/collab-studio/internal/config"
	"github.com/sakif/collab-studio/internal/executor"
	"github.com/sakif/collab-studio/internal/handler"
	"github.com/sakif/collab-studio/internal/middleware"
	"github.com/sakif/collab-studio/internal/repository"
	"github.com/sakif/collab-studio/internal/repository/memory"
	sqliteRepo "github.com/sakif/collab-studio/internal/repository/sqlite"
	"github.com/sakif/collab-studio/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The server owns the store: when the store is the sqlite backing, its
// connection must be closed on shutdown to flush the WAL and release the
// file lock. The memory backing has nothing to close, so closer stays nil.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	repo   repository.SessionRepository
	closer io.Closer // non-nil only for backings that hold resources
}

// New creates a Server, choosing the store backing from config.
//
// cfg.Storage.Driver: "sqlite" (default, durable) or "memory"
// (process-lifetime — identical external contract, nothing survives a
// restart). Anything else is a configuration mistake and fails fast.
func New(cfg config.Config, logger *slog.Logger, exec executor.Executor) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	switch cfg.Storage.Driver {
	case "sqlite", "":
		db, err := sqliteRepo.New(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.repo = db
		s.closer = db
	case "memory":
		s.repo = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	s.setupRoutes(exec)

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /api                      → liveness message (JSON)
//	POST   /api/sessions             → create session
//	GET    /api/sessions/{id}        → get session
//	POST   /api/sessions/{id}/join   → join session
//	PUT    /api/sessions/{id}/code   → update code buffer
//	POST   /api/execute              → (mock) code execution
//	GET    /metrics                  → Prometheus metrics
//	GET    /static/*                 → frontend assets (if configured)
//
// MIDDLEWARE ORDER MATTERS — middleware executes in the order it's added:
// RequestID and RealIP first (so logs carry them), Recoverer before our own
// middleware (a panic still gets logged as a 500), then metrics, logging,
// and CORS.
func (s *Server) setupRoutes(exec executor.Executor) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Metrics())
	s.router.Use(middleware.Logger(s.logger))

	// The original deployment served a browser frontend from a different
	// origin, so CORS stays permissive by default and configurable for
	// stricter setups.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	sessionService := service.NewSessionService(s.repo, s.logger)
	sessionHandler := handler.NewSessionHandler(sessionService, s.logger)
	executeHandler := handler.NewExecuteHandler(exec, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", handler.HandleRoot)

		r.Post("/sessions", sessionHandler.HandleCreate)
		r.Get("/sessions/{id}", sessionHandler.HandleGet)
		r.Post("/sessions/{id}/join", sessionHandler.HandleJoin)
		r.Put("/sessions/{id}/code", sessionHandler.HandleUpdateCode)

		r.Post("/execute", executeHandler.HandleExecute)
	})

	s.router.Handle("/metrics", promhttp.Handler())

	// Static frontend assets — thin glue, only wired when a directory is
	// configured (e.g. a built SPA bundle in a Docker image).
	if s.config.Server.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.Server.StaticDir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}
}

// Router exposes the configured router — used by tests to drive the full
// HTTP stack through httptest without opening a socket.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections on SIGINT/SIGTERM
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store (flushes the sqlite WAL, releases the file lock)
func (s *Server) Start() error {
	defer func() {
		if s.closer != nil {
			if err := s.closer.Close(); err != nil {
				s.logger.Error("closing store", slog.String("error", err.Error()))
			}
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("storage", s.config.Storage.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
