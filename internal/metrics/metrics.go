// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package metrics provides Prometheus instrumentation for the recommender:
// API request latency and throughput, catalog load statistics, and
// recommendation request counters broken down by strategy.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Catalog Metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_courses",
			Help: "Number of courses in the loaded catalog",
		},
	)

	CatalogRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_skipped_total",
			Help: "Total catalog rows skipped during load (malformed, duplicate, or missing code)",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by strategy",
		},
		[]string{"strategy"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation latency in seconds by strategy",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"strategy"},
	)

	// RowEvaluationErrors counts courses skipped during prerequisite
	// evaluation because the row could not be evaluated. The request still
	// succeeds with a shorter list; this counter is the observability hook
	// for that degradation.
	RowEvaluationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_row_evaluation_errors_total",
			Help: "Total courses skipped due to evaluation errors during prerequisite ranking",
		},
	)

	// Scraper Metrics
	ScrapePagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_pages_fetched_total",
			Help: "Total listing pages fetched by the catalog scraper",
		},
		[]string{"department", "result"},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetCatalogSize records the number of courses in the loaded catalog.
func SetCatalogSize(n int) {
	CatalogSize.Set(float64(n))
}

// AddCatalogRowsSkipped records rows dropped during catalog load.
func AddCatalogRowsSkipped(n int) {
	CatalogRowsSkipped.Add(float64(n))
}

// RecordRecommendation records one recommendation request for a strategy.
func RecordRecommendation(strategy string, duration time.Duration) {
	RecommendRequests.WithLabelValues(strategy).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordRowEvaluationError counts a course skipped during prerequisite
// evaluation.
func RecordRowEvaluationError() {
	RowEvaluationErrors.Inc()
}

// RecordScrapePage records the outcome of one listing-page fetch.
func RecordScrapePage(department string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ScrapePagesFetched.WithLabelValues(department, result).Inc()
}
