// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package scrape

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dharshinik0/ucsc-course-recommender/internal/catalog"
)

// coursePathPattern matches course detail links like /courses/cse13s.
var coursePathPattern = regexp.MustCompile(`^/courses/[a-z]+[0-9a-z]+`)

// whitespaceRun collapses runs of whitespace when cleaning page text.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Listing is one course link found on a department listing page.
type Listing struct {
	// Code is the course identifier from the link text, e.g. "CSE 13S".
	Code string

	// Title is the remainder of the link text after the code.
	Title string

	// DetailPath is the site-relative path to the course detail page.
	DetailPath string

	// Instructor is taken from the last cell of the listing row, when
	// the link sits inside a table.
	Instructor string
}

// cleanText collapses whitespace runs and trims the result.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ParseListing extracts course links from a department listing page.
// Link text has the shape "CSE 13S: Computer Systems and C Programming";
// everything before the first colon is the code.
func ParseListing(page []byte) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	var listings []Listing
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !coursePathPattern.MatchString(href) {
			return
		}

		text := cleanText(sel.Text())
		if text == "" {
			return
		}

		code := text
		title := text
		if idx := strings.Index(text, ":"); idx >= 0 {
			code = strings.TrimSpace(text[:idx])
			title = strings.TrimSpace(text[idx+1:])
		}

		listing := Listing{
			Code:       code,
			Title:      title,
			DetailPath: href,
		}

		// The listing table's last cell carries the instructor.
		if row := sel.Closest("tr"); row.Length() > 0 {
			cells := row.Find("td")
			if cells.Length() > 1 {
				listing.Instructor = cleanText(cells.Last().Text())
			}
		}

		listings = append(listings, listing)
	})

	return listings, nil
}

// ParseDescription extracts the course description block from a detail
// page. Missing blocks yield an empty string, not an error.
func ParseDescription(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse detail page: %w", err)
	}
	return cleanText(doc.Find("div.courseblockdesc").First().Text()), nil
}

// toCourse converts a listing plus its description into the descriptive
// catalog record shape.
func toCourse(l Listing, description, department string) catalog.Course {
	return catalog.Course{
		Code:        l.Code,
		Title:       l.Title,
		Description: description,
		Instructor:  l.Instructor,
		Department:  department,
	}
}
