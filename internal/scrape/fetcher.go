// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package scrape fetches course listing pages from the university
// catalog site and parses them into the descriptive CSV shape the
// catalog loader reads at startup.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/dharshinik0/ucsc-course-recommender/internal/logging"
)

// maxPageBytes bounds how much of a listing page is read into memory.
const maxPageBytes = 4 << 20

// Fetcher retrieves pages politely: a rate limiter paces requests and a
// circuit breaker stops hammering the catalog site when it starts
// failing.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[[]byte]
	userAgent string
}

// NewFetcher creates a fetcher. requestsPerSecond caps outbound request
// pacing; timeout bounds each individual request.
func NewFetcher(requestsPerSecond float64, timeout time.Duration, userAgent string) *Fetcher {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog-site",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		breaker:   breaker,
		userAgent: userAgent,
	}
}

// Fetch retrieves one page, waiting for the rate limiter first. Returns
// the page body or an error; non-2xx statuses are errors so they count
// against the circuit breaker.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	return f.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		if f.userAgent != "" {
			req.Header.Set("User-Agent", f.userAgent)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", url, err)
		}
		return body, nil
	})
}
