// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import (
	"strings"
	"time"

	"github.com/dharshinik0/ucsc-course-recommender/internal/catalog"
)

// Strategy selects which ranking pipeline handles a request. The two
// strategies never interact; a caller picks exactly one per request.
type Strategy int

const (
	// StrategyText ranks courses by TF-IDF cosine similarity between the
	// stated preferences and each course's descriptive text.
	StrategyText Strategy = iota
	// StrategyPrerequisites filters courses by a containment test over
	// their prerequisites text and ranks survivors easiest-first.
	StrategyPrerequisites
)

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyText:
		return "text"
	case StrategyPrerequisites:
		return "prerequisites"
	default:
		return "unknown"
	}
}

// Preferences is the caller-supplied query. All fields are optional;
// empty fields simply contribute nothing to the query blob.
type Preferences struct {
	// Interests is free text describing topics the student cares about.
	Interests string `json:"interests"`

	// Major is the student's declared major.
	Major string `json:"major"`

	// SkillLevel is one of "", "Any", "Beginner", "Intermediate",
	// "Advanced". "Any" is treated as empty.
	SkillLevel string `json:"skill_level"`

	// TimeAvailability is a preferred term, e.g. "Fall 2026". When set it
	// restricts candidates to courses offered in a matching term.
	TimeAvailability string `json:"time_availability"`
}

// QueryBlob joins the preference fields into the single text string that
// gets embedded into the catalog's vector space. A SkillLevel of "Any"
// contributes nothing, matching how the form front end submits it.
func (p Preferences) QueryBlob() string {
	skill := p.SkillLevel
	if strings.EqualFold(skill, "Any") {
		skill = ""
	}
	return strings.TrimSpace(strings.Join([]string{
		p.Interests,
		p.Major,
		skill,
		p.TimeAvailability,
	}, " "))
}

// Request is a single recommendation request.
type Request struct {
	// Strategy selects the ranking pipeline.
	Strategy Strategy `json:"strategy"`

	// Preferences is the free-text query. Used by StrategyText; its
	// TimeAvailability field is ignored by StrategyPrerequisites.
	Preferences Preferences `json:"preferences"`

	// Completed is the set of already-completed course codes,
	// case-insensitive. Used only by StrategyPrerequisites.
	Completed []string `json:"completed_courses"`

	// TopN bounds the result length. Zero means the configured default;
	// values above the configured maximum are clamped.
	TopN int `json:"top_n"`

	// RequestID correlates logs and responses. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// ScoredCourse pairs a catalog record with its relevance score.
// Prerequisite-ranked results carry no score; the field is omitted.
type ScoredCourse struct {
	Course catalog.Course `json:"course"`

	// Score is the cosine similarity to the query, in [0, 1].
	Score float64 `json:"relevance,omitempty"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Items is the ranked result list, at most TopN long.
	Items []ScoredCourse `json:"items"`

	// TotalCandidates is the number of courses considered after
	// filtering, before truncation to TopN.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries request tracing information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	Strategy  string    `json:"strategy"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Status reports engine health for the status probe.
type Status struct {
	Loaded         bool   `json:"loaded"`
	Courses        int    `json:"courses"`
	VocabularySize int    `json:"vocabulary_size"`
	CatalogVariant string `json:"catalog_variant"`
	RequestCount   int64  `json:"request_count"`
	ErrorCount     int64  `json:"error_count"`
	RowsSkipped    int64  `json:"rows_skipped"`
}

// PrerequisiteEvaluator decides whether a course's prerequisites text is
// satisfied by a set of completed course codes. The default containment
// heuristic can be swapped for a boolean-expression parser without
// touching callers.
type PrerequisiteEvaluator interface {
	// Eligible reports whether the prerequisites text is satisfied by
	// the completed set. Completed codes are matched case-insensitively.
	Eligible(prerequisites string, completed []string) bool
}
