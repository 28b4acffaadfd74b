// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dharshinik0/ucsc-course-recommender/internal/catalog"
	"github.com/dharshinik0/ucsc-course-recommender/internal/metrics"
)

// Engine owns one Catalog and its derived text index and serves both
// ranking strategies over them. The catalog and index are built once in
// NewEngine and never mutated afterwards, so an Engine is safe for
// concurrent use without locking; each request computes its own query
// vector and result slice.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog    *catalog.Catalog
	vectorizer *Vectorizer
	docVectors []SparseVector

	evaluator PrerequisiteEvaluator

	requestCount atomic.Int64
	errorCount   atomic.Int64
	rowsSkipped  atomic.Int64
}

// NewEngine builds the text index over the given catalog and returns a
// ready engine. Index construction is the only expensive step and is a
// pure function of the catalog's text content.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, cat *catalog.Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	courses := cat.Courses()
	blobs := make([]string, len(courses))
	for i := range courses {
		blobs[i] = courses[i].SearchBlob(cat.Variant())
	}

	vectorizer := NewVectorizer(cfg.MinTokenLength)
	docVectors := vectorizer.Fit(blobs)

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		catalog:    cat,
		vectorizer: vectorizer,
		docVectors: docVectors,
		evaluator:  ContainmentEvaluator{},
	}

	e.logger.Info().
		Int("courses", cat.Len()).
		Int("vocabulary", vectorizer.VocabularySize()).
		Str("variant", cat.Variant().String()).
		Msg("engine initialized")

	return e, nil
}

// SetPrerequisiteEvaluator replaces the containment heuristic. Must be
// called before the engine starts serving requests.
func (e *Engine) SetPrerequisiteEvaluator(ev PrerequisiteEvaluator) {
	if ev != nil {
		e.evaluator = ev
	}
}

// ListCourses returns the full normalized catalog in load order.
func (e *Engine) ListCourses() []catalog.Course {
	return e.catalog.Courses()
}

// Recommend dispatches a request to the strategy it names.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("strategy", req.Strategy.String()).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	var items []ScoredCourse
	var candidates int
	switch req.Strategy {
	case StrategyText:
		items, candidates = e.rankByText(req)
	case StrategyPrerequisites:
		items, candidates = e.rankByPrerequisites(req, logger)
	default:
		e.errorCount.Add(1)
		return nil, fmt.Errorf("unknown strategy %d", int(req.Strategy))
	}

	resp := &Response{
		Items:           items,
		TotalCandidates: candidates,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			Strategy:  req.Strategy.String(),
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now(),
		},
	}

	metrics.RecordRecommendation(req.Strategy.String(), time.Since(start))
	logger.Debug().
		Int("candidates", candidates).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// RecommendByText ranks the catalog by similarity to the preferences.
func (e *Engine) RecommendByText(ctx context.Context, prefs Preferences, topN int) (*Response, error) {
	return e.Recommend(ctx, Request{
		Strategy:    StrategyText,
		Preferences: prefs,
		TopN:        topN,
	})
}

// RecommendByPrerequisites returns eligible courses easiest-first.
func (e *Engine) RecommendByPrerequisites(ctx context.Context, completed []string, topN int) (*Response, error) {
	return e.Recommend(ctx, Request{
		Strategy:  StrategyPrerequisites,
		Completed: completed,
		TopN:      topN,
	})
}

// Status reports whether the catalog is loaded and basic counters.
func (e *Engine) Status() Status {
	return Status{
		Loaded:         e.catalog.Len() > 0,
		Courses:        e.catalog.Len(),
		VocabularySize: e.vectorizer.VocabularySize(),
		CatalogVariant: e.catalog.Variant().String(),
		RequestCount:   e.requestCount.Load(),
		ErrorCount:     e.errorCount.Load(),
		RowsSkipped:    e.rowsSkipped.Load(),
	}
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.TopN <= 0 {
		req.TopN = e.config.DefaultTopN
	}
	if req.TopN > e.config.MaxTopN {
		req.TopN = e.config.MaxTopN
	}
	return req
}

// rankByText embeds the query blob, optionally restricts candidates to
// courses offered in the requested term, and sorts by cosine similarity.
// Ties keep catalog order so results are reproducible.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) rankByText(req Request) ([]ScoredCourse, int) {
	courses := e.catalog.Courses()
	queryVec := e.vectorizer.Transform(req.Preferences.QueryBlob())

	term := strings.ToLower(strings.TrimSpace(req.Preferences.TimeAvailability))

	scored := make([]ScoredCourse, 0, len(courses))
	for i := range courses {
		if term != "" && !strings.Contains(strings.ToLower(courses[i].TermsOffered), term) {
			continue
		}
		scored = append(scored, ScoredCourse{
			Course: courses[i],
			Score:  queryVec.Dot(e.docVectors[i]),
		})
	}

	candidates := len(scored)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > req.TopN {
		scored = scored[:req.TopN]
	}
	return scored, candidates
}

// rankByPrerequisites drops completed courses, keeps those whose
// prerequisites the student satisfies, and sorts easiest-first. A panic
// while evaluating one row skips that row only; the request still
// succeeds with a shorter list.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) rankByPrerequisites(req Request, logger zerolog.Logger) ([]ScoredCourse, int) {
	completed := make(map[string]struct{}, len(req.Completed))
	for _, code := range req.Completed {
		completed[normalizeCode(code)] = struct{}{}
	}

	courses := e.catalog.Courses()
	eligible := make([]ScoredCourse, 0, len(courses))
	for i := range courses {
		if _, done := completed[normalizeCode(courses[i].Code)]; done {
			continue
		}
		ok, err := e.evaluateRow(&courses[i], req.Completed)
		if err != nil {
			e.rowsSkipped.Add(1)
			metrics.RecordRowEvaluationError()
			logger.Warn().Err(err).Str("code", courses[i].Code).Msg("skipping course after evaluation failure")
			continue
		}
		if ok {
			eligible = append(eligible, ScoredCourse{Course: courses[i]})
		}
	}

	candidates := len(eligible)
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Course.Difficulty < eligible[j].Course.Difficulty
	})
	if len(eligible) > req.TopN {
		eligible = eligible[:req.TopN]
	}
	return eligible, candidates
}

// evaluateRow runs the evaluator with panic isolation so one malformed
// row cannot fail the whole request.
func (e *Engine) evaluateRow(course *catalog.Course, completed []string) (eligible bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			eligible = false
			err = fmt.Errorf("prerequisite evaluation panicked: %v", r)
		}
	}()
	return e.evaluator.Eligible(course.Prerequisites, completed), nil
}

// normalizeCode folds case and strips spaces so "cse 12" and "CSE12"
// compare equal.
func normalizeCode(code string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(code)), " ", "")
}
