// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dharshinik0/ucsc-course-recommender/internal/logging"
	"github.com/dharshinik0/ucsc-course-recommender/internal/models"
	"github.com/dharshinik0/ucsc-course-recommender/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent
// log injection through attacker-controlled input.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("api error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
		Metadata: responseMetadata(nil),
	})
}

// decodeJSONBody decodes and closes the request body, rejecting unknown
// fields so typos surface as 400s instead of silently defaulting.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// validateRequest validates a request struct and converts failures to the
// API error shape.
func validateRequest(v interface{}) *models.APIError {
	if err := validation.ValidateStruct(v); err != nil {
		apiErr := err.ToAPIError()
		return &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}
	}
	return nil
}
