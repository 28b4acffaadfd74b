// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package scrape

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dharshinik0/ucsc-course-recommender/internal/catalog"
	"github.com/dharshinik0/ucsc-course-recommender/internal/metrics"
)

// Department names one listing page to scrape.
type Department struct {
	Code string
	Path string
}

// DefaultDepartments lists the engineering departments scraped by
// default, relative to the configured base URL.
var DefaultDepartments = []Department{
	{Code: "AM", Path: "/courses/am/2025"},
	{Code: "BME", Path: "/courses/bme/2024"},
	{Code: "CMPM", Path: "/courses/cmpm/2024"},
	{Code: "ECE", Path: "/courses/ece/2024"},
	{Code: "GAME", Path: "/courses/game/2025"},
	{Code: "HCI", Path: "/courses/hci/2025"},
	{Code: "NLP", Path: "/courses/nlp/2025"},
	{Code: "STAT", Path: "/courses/stat/2025"},
	{Code: "TIM", Path: "/courses/tim/2025"},
}

// csvHeader is the descriptive catalog shape the loader detects.
var csvHeader = []string{
	"course_id", "title", "description", "tags",
	"term_offered", "instructor", "department",
}

// Scraper walks department listing pages, follows each course link for
// its description, and accumulates descriptive catalog records.
type Scraper struct {
	fetcher     *Fetcher
	baseURL     string
	departments []Department
	maxPages    int
	logger      zerolog.Logger
}

// NewScraper creates a scraper rooted at baseURL. An empty departments
// slice scrapes DefaultDepartments.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScraper(fetcher *Fetcher, baseURL string, departments []Department, maxPages int, logger zerolog.Logger) *Scraper {
	if len(departments) == 0 {
		departments = DefaultDepartments
	}
	if maxPages < 1 {
		maxPages = len(departments)
	}
	return &Scraper{
		fetcher:     fetcher,
		baseURL:     strings.TrimRight(baseURL, "/"),
		departments: departments,
		maxPages:    maxPages,
		logger:      logger.With().Str("component", "scrape").Logger(),
	}
}

// Run scrapes all configured departments. A department that fails to
// fetch or parse is logged and skipped; the remaining departments still
// contribute courses. Returns an error only when the context ends or
// every department fails.
func (s *Scraper) Run(ctx context.Context) ([]catalog.Course, error) {
	var courses []catalog.Course
	var failures int
	pages := 0

	for _, dept := range s.departments {
		if pages >= s.maxPages {
			s.logger.Warn().Int("max_pages", s.maxPages).Msg("page budget exhausted, stopping")
			break
		}
		if err := ctx.Err(); err != nil {
			return courses, err
		}

		pages++
		deptCourses, err := s.scrapeDepartment(ctx, dept)
		metrics.RecordScrapePage(dept.Code, err)
		if err != nil {
			failures++
			s.logger.Error().Err(err).Str("department", dept.Code).Msg("department scrape failed")
			continue
		}

		s.logger.Info().
			Str("department", dept.Code).
			Int("courses", len(deptCourses)).
			Msg("department scraped")
		courses = append(courses, deptCourses...)
	}

	if failures == len(s.departments) {
		return nil, fmt.Errorf("all %d departments failed to scrape", failures)
	}
	return courses, nil
}

// scrapeDepartment fetches one listing page and the detail page of each
// course on it. A detail page that fails leaves the description empty
// rather than dropping the course.
func (s *Scraper) scrapeDepartment(ctx context.Context, dept Department) ([]catalog.Course, error) {
	listingURL, err := s.absoluteURL(dept.Path)
	if err != nil {
		return nil, err
	}

	page, err := s.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	listings, err := ParseListing(page)
	if err != nil {
		return nil, err
	}

	courses := make([]catalog.Course, 0, len(listings))
	for _, l := range listings {
		description := ""
		detailURL, urlErr := s.absoluteURL(l.DetailPath)
		if urlErr == nil {
			if detail, fetchErr := s.fetcher.Fetch(ctx, detailURL); fetchErr == nil {
				if d, parseErr := ParseDescription(detail); parseErr == nil {
					description = d
				}
			} else {
				s.logger.Debug().Err(fetchErr).Str("code", l.Code).Msg("detail page fetch failed")
			}
		}
		courses = append(courses, toCourse(l, description, dept.Code))
	}
	return courses, nil
}

// absoluteURL resolves a site-relative path against the base URL.
func (s *Scraper) absoluteURL(path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// WriteCSV writes courses in the descriptive catalog shape the loader
// reads. The file is created or truncated.
func WriteCSV(path string, courses []catalog.Course) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range courses {
		c := &courses[i]
		row := []string{
			c.Code, c.Title, c.Description, c.Tags,
			c.TermsOffered, c.Instructor, c.Department,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", c.Code, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
