// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	TopN       int    `validate:"omitempty,min=1,max=50"`
	SkillLevel string `validate:"omitempty,oneof=Any Beginner Intermediate Advanced"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&sampleRequest{TopN: 5, SkillLevel: "Beginner"}); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateStructZeroValuesPass(t *testing.T) {
	if err := ValidateStruct(&sampleRequest{}); err != nil {
		t.Errorf("omitempty fields should pass when zero: %v", err)
	}
}

func TestValidateStructSingleError(t *testing.T) {
	err := ValidateStruct(&sampleRequest{TopN: 500})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "TopN" {
		t.Errorf("details field = %v, want TopN", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	err := ValidateStruct(&sampleRequest{TopN: 500, SkillLevel: "Expert"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "TopN") || !strings.Contains(apiErr.Message, "SkillLevel") {
		t.Errorf("combined message should name both fields, got %q", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error details should carry a fields list")
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}
