// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

// Package recommend is the core recommendation engine. It turns a loaded
// course catalog plus a student's stated preferences or completed-course
// history into a ranked list of candidate courses.
//
// Two independent strategies share one engine:
//
//   - text: TF-IDF cosine similarity between a free-text preference query
//     and each course's descriptive fields, with an optional term filter.
//   - prerequisites: a containment heuristic over each course's
//     prerequisites text, excluding completed courses and ranking
//     survivors easiest-first.
//
// The catalog and its text index are built once at construction and are
// read-only afterwards, so one Engine serves concurrent requests without
// locking.
package recommend
