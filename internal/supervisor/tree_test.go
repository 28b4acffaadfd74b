// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package supervisor

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

// idleService blocks until its context is canceled.
type idleService struct {
	started chan struct{}
}

func (s *idleService) Serve(ctx context.Context) error {
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *idleService) String() string { return "idle" }

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want 5.0", cfg.FailureThreshold)
	}
	if cfg.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %v, want 15s", cfg.FailureBackoff)
	}
}

func TestNewTreeAppliesDefaults(t *testing.T) {
	tree := NewTree(slog.Default(), TreeConfig{})
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("zero FailureThreshold should default to 5.0, got %f", tree.config.FailureThreshold)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("zero ShutdownTimeout should default to 10s, got %v", tree.config.ShutdownTimeout)
	}
}

func TestTreeRunsAndStopsServices(t *testing.T) {
	tree := NewTree(slog.Default(), DefaultTreeConfig())

	svc := &idleService{started: make(chan struct{}, 1)}
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service did not start")
	}

	cancel()

	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}
}
