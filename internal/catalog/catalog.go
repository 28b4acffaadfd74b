// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package catalog loads the course catalog from a flat CSV file into an
// immutable in-memory table.
//
// Two catalog shapes exist in the wild and are detected from the header row:
//
//   - descriptive (scraper output): course_id, title, description, tags,
//     term_offered, instructor, department
//   - structured (hand-curated): course_number, tags, prerequisites,
//     quarters_offered, difficulty_rating
//
// Both normalize to the same Course record so the recommendation engine
// never branches on catalog shape. A Catalog is built once by Load and is
// never mutated afterwards, which makes it safe to share across concurrent
// requests without locking.
package catalog

import "strings"

// DefaultDifficulty is substituted when a catalog row has no difficulty
// rating or an unparsable one.
const DefaultDifficulty = 3

// Difficulty ratings are clamped to this range on load.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Variant identifies the on-disk catalog shape detected at load time.
type Variant int

const (
	// VariantDescriptive is the scraper-produced shape with title and
	// description columns.
	VariantDescriptive Variant = iota
	// VariantStructured is the hand-curated shape with prerequisites and
	// difficulty columns.
	VariantStructured
)

// String returns a human-readable variant name.
func (v Variant) String() string {
	switch v {
	case VariantDescriptive:
		return "descriptive"
	case VariantStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Course is one normalized catalog record.
// All text fields are non-nil at rest; empty string substitutes for missing.
type Course struct {
	// Code is the stable unique course identifier, e.g. "CSE 12".
	Code string `json:"code"`

	// Title is the course title (descriptive catalogs only).
	Title string `json:"title,omitempty"`

	// Description is the free-text course description.
	Description string `json:"description,omitempty"`

	// Tags is free text describing course topics.
	Tags string `json:"tags,omitempty"`

	// Prerequisites is free text, possibly a boolean expression over course
	// codes. Empty and "NONE" both mean no prerequisites.
	Prerequisites string `json:"prerequisites,omitempty"`

	// TermsOffered lists the terms the course is offered in, comma or word
	// separated ("Fall 2025, Winter 2026").
	TermsOffered string `json:"quarters_offered,omitempty"`

	// Instructor is the listed instructor (descriptive catalogs only).
	Instructor string `json:"instructor,omitempty"`

	// Department is the offering department code (descriptive catalogs only).
	Department string `json:"department,omitempty"`

	// Difficulty is the declared difficulty rating in [1, 5], default 3.
	Difficulty int `json:"difficulty_rating"`
}

// SearchBlob returns the text indexed for similarity search, joining the
// variant's descriptive fields with single spaces.
func (c *Course) SearchBlob(v Variant) string {
	var fields []string
	switch v {
	case VariantStructured:
		fields = []string{c.Code, c.Tags, c.Prerequisites}
	default:
		fields = []string{c.Title, c.Description, c.Tags}
	}
	return strings.Join(fields, " ")
}

// Catalog is the full in-memory course table for one session.
// Records keep their original file order; that order is the tiebreak for
// every ranking the engine produces.
type Catalog struct {
	courses []Course
	variant Variant
	path    string
}

// New builds a catalog directly from records, bypassing file parsing.
// Intended for tests and embedded fixtures; Load is the normal path.
func New(courses []Course, variant Variant) *Catalog {
	return &Catalog{courses: courses, variant: variant}
}

// Courses returns the catalog records in stable original order.
// The returned slice must not be modified.
func (c *Catalog) Courses() []Course {
	return c.courses
}

// Len returns the number of courses in the catalog.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Variant returns the detected on-disk shape.
func (c *Catalog) Variant() Variant {
	return c.variant
}

// Path returns the file path the catalog was loaded from.
func (c *Catalog) Path() string {
	return c.path
}
