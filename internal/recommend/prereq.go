// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package recommend

import "strings"

// emptyPrerequisites are the sentinel spellings of "no prerequisites".
// Catalog normalization maps missing cells to "", but scraped rows can
// still carry the literal words.
var emptyPrerequisites = map[string]struct{}{
	"":     {},
	"NONE": {},
	"NAN":  {},
}

// codeSpellings maps the compact form of frequently listed course codes
// to the alternate spellings that appear in scraped prerequisites text.
// Students enter codes without spaces ("CSE12") while the catalog prose
// writes them spaced ("CSE 12").
var codeSpellings = map[string][]string{
	"CSE12":   {"CSE 12"},
	"CSE13S":  {"CSE 13S"},
	"CSE16":   {"CSE 16"},
	"CSE20":   {"CSE 20"},
	"CSE30":   {"CSE 30"},
	"CSE101":  {"CSE 101"},
	"MATH19A": {"MATH 19A"},
	"MATH19B": {"MATH 19B"},
	"AM10":    {"AM 10"},
}

// ContainmentEvaluator is the default PrerequisiteEvaluator. It treats a
// prerequisites string as satisfied when any completed course code
// appears in it as a case-insensitive substring, either verbatim or via
// a known alternate spelling. This approximates the boolean expressions
// found in catalog prose ("CSE 12 or MATH 19A") and can produce false
// positives on overlapping codes; callers wanting exact semantics should
// plug in an expression parser instead.
type ContainmentEvaluator struct{}

// Eligible implements PrerequisiteEvaluator.
func (ContainmentEvaluator) Eligible(prerequisites string, completed []string) bool {
	prereq := strings.ToUpper(strings.TrimSpace(prerequisites))
	if _, ok := emptyPrerequisites[prereq]; ok {
		return true
	}

	for _, code := range completed {
		uc := strings.ToUpper(strings.TrimSpace(code))
		if uc == "" {
			continue
		}
		if strings.Contains(prereq, uc) {
			return true
		}
		compact := strings.ReplaceAll(uc, " ", "")
		for _, alt := range codeSpellings[compact] {
			if strings.Contains(prereq, alt) {
				return true
			}
		}
	}
	return false
}
