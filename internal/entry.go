// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/skyroute/internal/api"
	"github.com/starford/skyroute/internal/booking"
	"github.com/starford/skyroute/internal/graphstore"
	"github.com/starford/skyroute/internal/mcpserver"
	"github.com/starford/skyroute/internal/routing"
	"github.com/starford/skyroute/internal/sse"
	"github.com/starford/skyroute/internal/storage"
	"github.com/starford/skyroute/internal/store"
)

type services struct {
	graphs   *graphstore.Store
	routes   *routing.Resolver
	db       *store.Store
	bookings *booking.Service
}

// buildServices loads the graphs and opens the booking store. The caller
// owns closing services.db.
func buildServices(cfg *Config, logger *slog.Logger, events booking.Events) (*services, error) {
	provider, err := storage.NewFS(cfg.Graphs.Dir)
	if err != nil {
		return nil, fmt.Errorf("init graphs storage: %w", err)
	}

	graphs := graphstore.New(provider, map[graphstore.Criterion]string{
		graphstore.CriterionCost:     cfg.Graphs.CostFile,
		graphstore.CriterionDistance: cfg.Graphs.DistanceFile,
		graphstore.CriterionTime:     cfg.Graphs.TimeFile,
	})
	if err := graphs.LoadAll(); err != nil {
		return nil, fmt.Errorf("load graphs: %w", err)
	}
	logger.Info("Graphs loaded",
		slog.String("dir", cfg.Graphs.Dir),
		slog.Int("nodes", len(graphs.Nodes())))

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init booking store: %w", err)
	}

	metrics, err := booking.LoadMetricsIndex(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load route catalogs: %w", err)
	}

	return &services{
		graphs:   graphs,
		routes:   routing.NewResolver(graphs),
		db:       db,
		bookings: booking.NewService(db, metrics, events),
	}, nil
}

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("graphs_dir", cfg.Graphs.Dir),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svcs, err := buildServices(cfg, logger, broker)
	if err != nil {
		return err
	}
	defer svcs.db.Close()

	apiRouter := api.NewRouter(svcs.routes, svcs.bookings, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start matrix watcher with SSE callback.
	if cfg.Graphs.Watch {
		g.Go(func() error {
			err := graphstore.Watch(gCtx, svcs.graphs, cfg.Graphs.Dir, logger, func(c graphstore.Criterion) {
				broker.Publish("graph.reloaded", map[string]string{"criterion": string(c)})
			})
			if err != nil {
				logger.Warn("matrix watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools over stdio instead of HTTP. Logs go to
// stderr so stdout stays clean for the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svcs, err := buildServices(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer svcs.db.Close()

	logger.Info("Starting MCP server on stdio")
	return mcpserver.New(svcs.routes, svcs.bookings).ServeStdio()
}
