// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dharshinik0/ucsc-course-recommender/internal/logging"
	"github.com/dharshinik0/ucsc-course-recommender/internal/metrics"
)

// ErrCatalogLoad indicates the catalog source file is missing, unreadable,
// or not parsable as tabular data. It is fatal to engine construction and
// is never retried.
var ErrCatalogLoad = errors.New("catalog load failed")

// descriptiveColumns maps descriptive-variant header labels to loaders.
var descriptiveColumns = map[string]func(*Course, string){
	"course_id":    func(c *Course, v string) { c.Code = v },
	"title":        func(c *Course, v string) { c.Title = v },
	"description":  func(c *Course, v string) { c.Description = v },
	"tags":         func(c *Course, v string) { c.Tags = v },
	"term_offered": func(c *Course, v string) { c.TermsOffered = v },
	"instructor":   func(c *Course, v string) { c.Instructor = v },
	"department":   func(c *Course, v string) { c.Department = v },
}

// structuredColumns maps structured-variant header labels to loaders.
var structuredColumns = map[string]func(*Course, string){
	"course_number":     func(c *Course, v string) { c.Code = v },
	"tags":              func(c *Course, v string) { c.Tags = v },
	"prerequisites":     func(c *Course, v string) { c.Prerequisites = v },
	"quarters_offered":  func(c *Course, v string) { c.TermsOffered = v },
	"difficulty_rating": func(c *Course, v string) { c.Difficulty = parseDifficulty(v) },
}

// Load reads the catalog CSV at path into an immutable Catalog.
//
// Header labels are whitespace-trimmed before matching; missing cells become
// empty strings and a missing or unparsable difficulty becomes
// DefaultDifficulty. Rows whose course code duplicates an earlier row, or
// that cannot be parsed at all, are skipped and counted rather than failing
// the load. Loading the same unchanged file twice yields equivalent
// catalogs.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrCatalogLoad, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	cat, err := parse(f, path)
	if err != nil {
		return nil, err
	}

	metrics.SetCatalogSize(cat.Len())
	logging.Debug().
		Str("path", path).
		Str("variant", cat.Variant().String()).
		Int("courses", cat.Len()).
		Msg("catalog loaded")

	return cat, nil
}

// parse reads CSV rows from r into a Catalog. Split out from Load so tests
// can feed in-memory data.
func parse(r io.Reader, path string) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows are padded/truncated below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrCatalogLoad, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	variant, columns, err := detectVariant(header)
	if err != nil {
		return nil, err
	}

	var (
		courses []Course
		seen    = make(map[string]struct{})
		skipped int
	)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row degrades to a shorter catalog, not a failed load.
			skipped++
			logging.Warn().Err(err).Int("line", line).Msg("skipping malformed catalog row")
			continue
		}

		course := Course{Difficulty: DefaultDifficulty}
		for i, label := range header {
			set, ok := columns[label]
			if !ok {
				continue
			}
			var cell string
			if i < len(record) {
				cell = normalizeCell(record[i])
			}
			set(&course, cell)
		}

		if course.Code == "" {
			skipped++
			continue
		}
		key := strings.ToUpper(course.Code)
		if _, dup := seen[key]; dup {
			skipped++
			logging.Warn().Str("code", course.Code).Int("line", line).Msg("skipping duplicate course code")
			continue
		}
		seen[key] = struct{}{}
		courses = append(courses, course)
	}

	if skipped > 0 {
		metrics.AddCatalogRowsSkipped(skipped)
	}

	return &Catalog{courses: courses, variant: variant, path: path}, nil
}

// detectVariant matches the trimmed header row against the known catalog
// shapes. Detection keys on the identifier column since the remaining
// labels overlap between variants.
func detectVariant(header []string) (Variant, map[string]func(*Course, string), error) {
	for _, label := range header {
		switch label {
		case "course_number":
			return VariantStructured, structuredColumns, nil
		case "course_id":
			return VariantDescriptive, descriptiveColumns, nil
		}
	}
	return 0, nil, fmt.Errorf("%w: unrecognized header %v", ErrCatalogLoad, header)
}

// normalizeCell trims whitespace and maps textual missing-value markers to
// empty string, matching how the original data files encode absent cells.
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// parseDifficulty coerces a difficulty cell to an int in
// [MinDifficulty, MaxDifficulty], defaulting when absent or unparsable.
func parseDifficulty(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDifficulty
	}
	// Some files carry float-formatted ratings ("3.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return DefaultDifficulty
	}
	d := int(f)
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
