// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package config loads layered application configuration: built-in
// defaults, an optional YAML file, then environment variables, each
// layer overriding the last.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server" json:"server"`
	Catalog   CatalogConfig   `koanf:"catalog" json:"catalog"`
	Recommend RecommendConfig `koanf:"recommend" json:"recommend"`
	Scrape    ScrapeConfig    `koanf:"scrape" json:"scrape"`
	Logging   LoggingConfig   `koanf:"logging" json:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" json:"host"`

	// Port is the listen port.
	Port int `koanf:"port" json:"port"`

	// Timeout bounds request read and write.
	Timeout time.Duration `koanf:"timeout" json:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout"`

	// CORSOrigins is the CORS allowlist for the API.
	CORSOrigins []string `koanf:"cors_origins" json:"cors_origins"`

	// RateLimit is the per-IP request budget per minute.
	RateLimit int `koanf:"rate_limit" json:"rate_limit"`
}

// CatalogConfig holds catalog source settings.
type CatalogConfig struct {
	// Path is the CSV file read at startup.
	Path string `koanf:"path" json:"path"`
}

// RecommendConfig holds engine knobs.
type RecommendConfig struct {
	DefaultTopN    int `koanf:"default_top_n" json:"default_top_n"`
	MaxTopN        int `koanf:"max_top_n" json:"max_top_n"`
	MinTokenLength int `koanf:"min_token_length" json:"min_token_length"`
}

// ScrapeConfig holds course-listing scraper settings.
type ScrapeConfig struct {
	// BaseURL is the course listing page to fetch.
	BaseURL string `koanf:"base_url" json:"base_url"`

	// OutputPath is where the scraped catalog CSV is written.
	OutputPath string `koanf:"output_path" json:"output_path"`

	// RequestsPerSecond paces outbound fetches.
	RequestsPerSecond float64 `koanf:"requests_per_second" json:"requests_per_second"`

	// Timeout bounds each page fetch.
	Timeout time.Duration `koanf:"timeout" json:"timeout"`

	// MaxPages caps listing pagination.
	MaxPages int `koanf:"max_pages" json:"max_pages"`

	// UserAgent identifies the scraper to the remote host.
	UserAgent string `koanf:"user_agent" json:"user_agent"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
	Caller bool   `koanf:"caller" json:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5001,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       120,
		},
		Catalog: CatalogConfig{
			Path: "data/courses.csv",
		},
		Recommend: RecommendConfig{
			DefaultTopN:    5,
			MaxTopN:        50,
			MinTokenLength: 2,
		},
		Scrape: ScrapeConfig{
			BaseURL:           "https://courses.ucsc.edu/courses",
			OutputPath:        "data/courses.csv",
			RequestsPerSecond: 1,
			Timeout:           15 * time.Second,
			MaxPages:          50,
			UserAgent:         "ucsc-course-recommender/1.0",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values the application cannot
// run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if c.Recommend.DefaultTopN <= 0 {
		return fmt.Errorf("recommend.default_top_n must be positive")
	}
	if c.Recommend.MaxTopN < c.Recommend.DefaultTopN {
		return fmt.Errorf("recommend.max_top_n %d must be >= default_top_n %d",
			c.Recommend.MaxTopN, c.Recommend.DefaultTopN)
	}
	if c.Scrape.RequestsPerSecond <= 0 {
		return fmt.Errorf("scrape.requests_per_second must be positive")
	}
	if c.Scrape.MaxPages < 1 {
		return fmt.Errorf("scrape.max_pages must be >= 1")
	}
	return nil
}
