// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package main is the catalog scraper entry point.
//
// The scraper crawls the public course catalog site, extracts course codes,
// titles, descriptions, and instructors, and writes a descriptive-variant
// CSV that the server loads at startup. Fetches are rate limited and run
// behind a circuit breaker so a struggling catalog site is backed off
// rather than hammered.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dharshinik0/ucsc-course-recommender/internal/config"
	"github.com/dharshinik0/ucsc-course-recommender/internal/logging"
	"github.com/dharshinik0/ucsc-course-recommender/internal/scrape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("base_url", cfg.Scrape.BaseURL).
		Str("output", cfg.Scrape.OutputPath).
		Float64("requests_per_second", cfg.Scrape.RequestsPerSecond).
		Msg("Starting catalog scrape")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	fetcher := scrape.NewFetcher(cfg.Scrape.RequestsPerSecond, cfg.Scrape.Timeout, cfg.Scrape.UserAgent)
	scraper := scrape.NewScraper(fetcher, cfg.Scrape.BaseURL, nil, cfg.Scrape.MaxPages, logging.Logger())

	courses, err := scraper.Run(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("Scrape failed")
	}

	if err := scrape.WriteCSV(cfg.Scrape.OutputPath, courses); err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Scrape.OutputPath).Msg("Failed to write catalog CSV")
	}

	logging.Info().
		Int("courses", len(courses)).
		Str("path", cfg.Scrape.OutputPath).
		Msg("Catalog written")
}
