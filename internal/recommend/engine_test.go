// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dharshinik0/ucsc-course-recommender/internal/catalog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func structuredCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Course{
		{Code: "CSE12", Tags: "assembly, systems", Prerequisites: "NONE", TermsOffered: "Fall 2025, Winter 2026", Difficulty: 2},
		{Code: "CSE13S", Tags: "c, systems programming", Prerequisites: "CSE 12", TermsOffered: "Winter 2026", Difficulty: 4},
		{Code: "CSE16", Tags: "discrete math", Prerequisites: "NONE", TermsOffered: "Fall 2025", Difficulty: 3},
		{Code: "CSE101", Tags: "algorithms, data structures", Prerequisites: "CSE 13S and CSE 16", TermsOffered: "Spring 2026", Difficulty: 5},
	}, catalog.VariantStructured)
}

func descriptiveCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Course{
		{Code: "CS101", Title: "Intro to Machine Learning", Description: "Supervised learning and model evaluation.", Tags: "machine learning, python", TermsOffered: "Fall 2025", Difficulty: 3},
		{Code: "CS102", Title: "Medieval History", Description: "European history from 500 to 1500.", Tags: "history", TermsOffered: "Winter 2026", Difficulty: 2},
	}, catalog.VariantDescriptive)
}

func newTestEngine(t *testing.T, cat *catalog.Catalog) *Engine {
	t.Helper()
	e, err := NewEngine(nil, cat, testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := &Config{DefaultTopN: 0, MaxTopN: 10, MinTokenLength: 2}
	if _, err := NewEngine(cfg, structuredCatalog(), testLogger()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestNewEngineRequiresCatalog(t *testing.T) {
	if _, err := NewEngine(nil, nil, testLogger()); err == nil {
		t.Error("expected error for nil catalog")
	}
}

func TestListCoursesReturnsFullCatalog(t *testing.T) {
	cat := structuredCatalog()
	e := newTestEngine(t, cat)

	got := e.ListCourses()
	if !reflect.DeepEqual(got, cat.Courses()) {
		t.Error("ListCourses should return the catalog records unchanged")
	}
}

func TestRecommendByTextRanksMatchingCourseFirst(t *testing.T) {
	e := newTestEngine(t, descriptiveCatalog())

	resp, err := e.RecommendByText(context.Background(), Preferences{Interests: "machine learning"}, 5)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(resp.Items))
	}
	if resp.Items[0].Course.Code != "CS101" {
		t.Errorf("top course = %s, want CS101", resp.Items[0].Course.Code)
	}
	if resp.Items[0].Score <= 0 {
		t.Errorf("matching course score = %f, want > 0", resp.Items[0].Score)
	}
	if resp.Items[1].Score >= resp.Items[0].Score {
		t.Errorf("non-matching course score %f should be below %f", resp.Items[1].Score, resp.Items[0].Score)
	}
}

func TestRecommendByTextIsDeterministic(t *testing.T) {
	cat := descriptiveCatalog()
	prefs := Preferences{Interests: "machine learning", Major: "Computer Science"}

	e1 := newTestEngine(t, cat)
	e2 := newTestEngine(t, cat)

	r1, err := e1.RecommendByText(context.Background(), prefs, 5)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	r2, err := e2.RecommendByText(context.Background(), prefs, 5)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}

	if len(r1.Items) != len(r2.Items) {
		t.Fatalf("result lengths differ: %d vs %d", len(r1.Items), len(r2.Items))
	}
	for i := range r1.Items {
		if r1.Items[i].Course.Code != r2.Items[i].Course.Code || r1.Items[i].Score != r2.Items[i].Score {
			t.Errorf("item %d differs between identically built engines", i)
		}
	}
}

func TestRecommendByTextEmptyQueryKeepsCatalogOrder(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Code: "A1"},
		{Code: "A2"},
		{Code: "A3"},
	}, catalog.VariantDescriptive)
	e := newTestEngine(t, cat)

	resp, err := e.RecommendByText(context.Background(), Preferences{}, 5)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	want := []string{"A1", "A2", "A3"}
	for i, w := range want {
		if resp.Items[i].Course.Code != w {
			t.Errorf("item %d = %s, want %s (stable catalog order)", i, resp.Items[i].Course.Code, w)
		}
		if resp.Items[i].Score != 0 {
			t.Errorf("item %d score = %f, want 0", i, resp.Items[i].Score)
		}
	}
}

func TestRecommendByTextSkillLevelAnyIgnored(t *testing.T) {
	prefs := Preferences{Interests: "machine learning", SkillLevel: "Any"}
	if got := prefs.QueryBlob(); got != "machine learning" {
		t.Errorf("QueryBlob() = %q, want %q", got, "machine learning")
	}
}

func TestRecommendByTextTermFilter(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	resp, err := e.RecommendByText(context.Background(), Preferences{TimeAvailability: "fall 2025"}, 10)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	if resp.TotalCandidates != 2 {
		t.Errorf("candidates = %d, want 2", resp.TotalCandidates)
	}
	for _, item := range resp.Items {
		if item.Course.Code != "CSE12" && item.Course.Code != "CSE16" {
			t.Errorf("course %s does not match the term filter", item.Course.Code)
		}
	}
}

func TestRecommendByTextUnmatchedTermYieldsEmpty(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	resp, err := e.RecommendByText(context.Background(), Preferences{TimeAvailability: "Winter 2099"}, 5)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("got %d items, want 0", len(resp.Items))
	}
	if resp.TotalCandidates != 0 {
		t.Errorf("candidates = %d, want 0", resp.TotalCandidates)
	}
}

func TestRecommendTopNBound(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	for _, topN := range []int{1, 2, 3, 10} {
		resp, err := e.RecommendByText(context.Background(), Preferences{Interests: "systems"}, topN)
		if err != nil {
			t.Fatalf("RecommendByText(topN=%d): %v", topN, err)
		}
		want := topN
		if want > 4 {
			want = 4
		}
		if len(resp.Items) != want {
			t.Errorf("topN=%d: got %d items, want %d", topN, len(resp.Items), want)
		}
	}
}

func TestRecommendTopNDefaultsAndClamps(t *testing.T) {
	cfg := &Config{DefaultTopN: 2, MaxTopN: 3, MinTokenLength: 2}
	e, err := NewEngine(cfg, structuredCatalog(), testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	resp, err := e.RecommendByText(context.Background(), Preferences{}, 0)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Errorf("default topN: got %d items, want 2", len(resp.Items))
	}

	resp, err = e.RecommendByText(context.Background(), Preferences{}, 100)
	if err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Errorf("clamped topN: got %d items, want 3", len(resp.Items))
	}
}

func TestRecommendByPrerequisitesExcludesCompleted(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	resp, err := e.RecommendByPrerequisites(context.Background(), []string{"cse12", "CSE 16"}, 10)
	if err != nil {
		t.Fatalf("RecommendByPrerequisites: %v", err)
	}
	for _, item := range resp.Items {
		if item.Course.Code == "CSE12" || item.Course.Code == "CSE16" {
			t.Errorf("completed course %s should be excluded", item.Course.Code)
		}
	}
}

func TestRecommendByPrerequisitesScenario(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{Code: "CSE12", Prerequisites: "NONE", Difficulty: 2},
		{Code: "CSE13S", Prerequisites: "CSE 12", Difficulty: 4},
	}, catalog.VariantStructured)
	e := newTestEngine(t, cat)

	resp, err := e.RecommendByPrerequisites(context.Background(), []string{"CSE12"}, 5)
	if err != nil {
		t.Fatalf("RecommendByPrerequisites: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}
	if resp.Items[0].Course.Code != "CSE13S" {
		t.Errorf("recommended %s, want CSE13S", resp.Items[0].Course.Code)
	}
	if resp.Items[0].Score != 0 {
		t.Errorf("prerequisite ranking should not carry a score, got %f", resp.Items[0].Score)
	}
}

func TestRecommendByPrerequisitesDifficultyOrdering(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	resp, err := e.RecommendByPrerequisites(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("RecommendByPrerequisites: %v", err)
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i].Course.Difficulty < resp.Items[i-1].Course.Difficulty {
			t.Errorf("difficulty out of order at %d: %d after %d",
				i, resp.Items[i].Course.Difficulty, resp.Items[i-1].Course.Difficulty)
		}
	}
}

func TestRecommendByPrerequisitesGatesUnsatisfied(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	// Nothing completed: only courses with no prerequisites survive.
	resp, err := e.RecommendByPrerequisites(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("RecommendByPrerequisites: %v", err)
	}
	got := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		got = append(got, item.Course.Code)
	}
	want := []string{"CSE12", "CSE16"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("eligible courses = %v, want %v", got, want)
	}
}

type panickyEvaluator struct {
	failCode string
}

func (p panickyEvaluator) Eligible(prereq string, completed []string) bool {
	if prereq == p.failCode {
		panic("malformed row")
	}
	return true
}

func TestRecommendByPrerequisitesSkipsPanickedRows(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())
	e.SetPrerequisiteEvaluator(panickyEvaluator{failCode: "CSE 12"})

	resp, err := e.RecommendByPrerequisites(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("RecommendByPrerequisites: %v", err)
	}
	for _, item := range resp.Items {
		if item.Course.Code == "CSE13S" {
			t.Error("row whose evaluation panicked should be skipped")
		}
	}
	if got := e.Status().RowsSkipped; got != 1 {
		t.Errorf("RowsSkipped = %d, want 1", got)
	}
}

func TestRecommendUnknownStrategy(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	if _, err := e.Recommend(context.Background(), Request{Strategy: Strategy(99)}); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestRecommendHonorsContextCancellation(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, Request{Strategy: StrategyText}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestStatusReportsCounters(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	if _, err := e.RecommendByText(context.Background(), Preferences{}, 5); err != nil {
		t.Fatalf("RecommendByText: %v", err)
	}

	st := e.Status()
	if !st.Loaded {
		t.Error("Loaded = false, want true")
	}
	if st.Courses != 4 {
		t.Errorf("Courses = %d, want 4", st.Courses)
	}
	if st.VocabularySize == 0 {
		t.Error("VocabularySize = 0, want > 0")
	}
	if st.RequestCount != 1 {
		t.Errorf("RequestCount = %d, want 1", st.RequestCount)
	}
	if st.CatalogVariant != "structured" {
		t.Errorf("CatalogVariant = %q, want structured", st.CatalogVariant)
	}
}

func TestResponseMetadataPopulated(t *testing.T) {
	e := newTestEngine(t, structuredCatalog())

	resp, err := e.Recommend(context.Background(), Request{Strategy: StrategyText, RequestID: "req-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", resp.Metadata.RequestID)
	}
	if resp.Metadata.Strategy != "text" {
		t.Errorf("Strategy = %q, want text", resp.Metadata.Strategy)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	resp, err = e.Recommend(context.Background(), Request{Strategy: StrategyText})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("RequestID should be generated when empty")
	}
}
