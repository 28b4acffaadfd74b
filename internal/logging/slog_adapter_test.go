// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandlerWritesToZerolog(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler)

	logger.Info("server started", slog.String("addr", ":8080"), slog.Int("courses", 42))

	out := buf.String()
	if !strings.Contains(out, `"message":"server started"`) {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `"addr":":8080"`) {
		t.Errorf("expected string attr in output, got %q", out)
	}
	if !strings.Contains(out, `"courses":42`) {
		t.Errorf("expected int attr in output, got %q", out)
	}
}

func TestSlogHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler).With(slog.String("service", "http-server"))

	logger.Warn("restarting")

	out := buf.String()
	if !strings.Contains(out, `"service":"http-server"`) {
		t.Errorf("expected pre-configured attr, got %q", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level, got %q", out)
	}
}

func TestSlogHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler).WithGroup("supervisor")

	logger.Info("event", slog.String("name", "api-layer"))

	if !strings.Contains(buf.String(), `"supervisor.name":"api-layer"`) {
		t.Errorf("expected group-prefixed key, got %q", buf.String())
	}
}
