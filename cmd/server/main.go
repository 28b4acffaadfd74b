// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package main is the entry point for the course recommender server.
//
// The server loads the course catalog from CSV, builds the text index once
// at startup, and serves recommendations over HTTP. Components start under
// a supervisor tree so a crashed HTTP listener restarts with backoff instead
// of taking the process down.
//
// # Startup Order
//
//  1. Configuration: environment variables layered over an optional YAML file (Koanf v2)
//  2. Logging: zerolog, configured from the loaded settings
//  3. Catalog: CSV load, variant detection, row normalization
//  4. Engine: TF-IDF fit over the catalog plus the prerequisite evaluator
//  5. HTTP: chi router with CORS, rate limiting, and Prometheus metrics
//  6. Supervisor: suture tree owning the HTTP server service
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dharshinik0/ucsc-course-recommender/internal/api"
	"github.com/dharshinik0/ucsc-course-recommender/internal/catalog"
	"github.com/dharshinik0/ucsc-course-recommender/internal/config"
	"github.com/dharshinik0/ucsc-course-recommender/internal/logging"
	"github.com/dharshinik0/ucsc-course-recommender/internal/metrics"
	"github.com/dharshinik0/ucsc-course-recommender/internal/recommend"
	"github.com/dharshinik0/ucsc-course-recommender/internal/supervisor"
	"github.com/dharshinik0/ucsc-course-recommender/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Msg("Starting course recommender")

	// Load the catalog. The engine is read-only after this point, so a bad
	// catalog is a startup failure, not a runtime one.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	metrics.SetCatalogSize(cat.Len())
	logging.Info().
		Int("courses", cat.Len()).
		Str("variant", cat.Variant().String()).
		Msg("Catalog loaded")

	engine, err := recommend.NewEngine(&recommend.Config{
		DefaultTopN:    cfg.Recommend.DefaultTopN,
		MaxTopN:        cfg.Recommend.MaxTopN,
		MinTokenLength: cfg.Recommend.MinTokenLength,
	}, cat, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	handler := api.NewHandler(engine, logging.Logger())
	router := api.NewRouter(handler, api.RouterConfig{
		AllowedOrigins: cfg.Server.CORSOrigins,
		RateLimit:      cfg.Server.RateLimit,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog into slog for the supervisor's event hook
	slogLogger := logging.NewSlogLogger()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(slogLogger, treeCfg)

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
}
