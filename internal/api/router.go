// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package api exposes the recommendation engine over HTTP using the chi
// router. The engine is injected at construction; handlers hold no other
// state, so the whole surface is safe for concurrent requests.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharshinik0/ucsc-course-recommender/internal/middleware"
)

// RouterConfig holds the HTTP-surface knobs.
type RouterConfig struct {
	// AllowedOrigins is the CORS allowlist. The form front end runs on a
	// different origin in development, so this defaults permissive.
	AllowedOrigins []string

	// RateLimit is the per-IP request budget per minute for /api routes.
	RateLimit int
}

// DefaultRouterConfig returns the development defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		AllowedOrigins: []string{"*"},
		RateLimit:      120,
	}
}

// Router wires handlers, middleware, and routes.
type Router struct {
	handler *Handler
	cfg     RouterConfig
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRouterConfig().RateLimit
	}
	return &Router{handler: handler, cfg: cfg}
}

// Setup configures all HTTP routes and returns the root handler.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(rt.handler.NotFound)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.RateLimit, time.Minute))
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", rt.handler.Health)
		r.Get("/courses", rt.handler.ListCourses)
		r.Post("/recommendations", rt.handler.Recommend)
		r.Post("/recommendations/text", rt.handler.RecommendText)
	})

	return r
}
