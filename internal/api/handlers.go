// UCSC Course Recommender - Catalog-Driven Course Recommendations
// Copyright 2026 dharshinik0
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dharshinik0/ucsc-course-recommender

package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharshinik0/ucsc-course-recommender/internal/logging"
	"github.com/dharshinik0/ucsc-course-recommender/internal/middleware"
	"github.com/dharshinik0/ucsc-course-recommender/internal/models"
	"github.com/dharshinik0/ucsc-course-recommender/internal/recommend"
)

// Handler serves the recommendation API. All state lives in the engine;
// handlers only translate between HTTP and engine calls.
type Handler struct {
	engine *recommend.Engine
	logger zerolog.Logger
}

// NewHandler creates an API handler backed by the given engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine *recommend.Engine, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// RecommendationRequest is the POST /api/recommendations body. Strategy
// is optional and defaults to "prerequisites"; "text" switches to
// similarity ranking over the preferences.
type RecommendationRequest struct {
	CompletedCourses []string              `json:"completed_courses" validate:"omitempty,max=200,dive,max=32"`
	Preferences      recommend.Preferences `json:"preferences"`
	TopN             int                   `json:"top_n" validate:"omitempty,min=1,max=50"`
	Strategy         string                `json:"strategy" validate:"omitempty,oneof=prerequisites text"`
}

// TextRecommendationRequest is the POST /api/recommendations/text body.
type TextRecommendationRequest struct {
	Preferences recommend.Preferences `json:"preferences"`
	TopN        int                   `json:"top_n" validate:"omitempty,min=1,max=50"`
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.Status(),
		Metadata: responseMetadata(nil),
	})
}

// ListCourses handles GET /api/courses, returning the full normalized
// catalog.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses := h.engine.ListCourses()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"courses": courses,
			"total":   len(courses),
		},
		Metadata: responseMetadata(nil),
	})
}

// Recommend handles POST /api/recommendations: prerequisite-gated,
// difficulty-ranked recommendations from the completed-course list.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.logger.Debug().Err(err).Msg("rejected recommendation body")
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Error:    apiErr,
			Metadata: responseMetadata(nil),
		})
		return
	}

	strategy := recommend.StrategyPrerequisites
	if req.Strategy == "text" {
		strategy = recommend.StrategyText
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Strategy:    strategy,
		Preferences: req.Preferences,
		Completed:   req.CompletedCourses,
		TopN:        req.TopN,
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("strategy", strategy.String()).Msg("recommendation failed")
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "failed to generate recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"recommendations":   resp.Items,
			"total_candidates":  resp.TotalCandidates,
			"completed_courses": req.CompletedCourses,
		},
		Metadata: responseMetadata(&resp.Metadata),
	})
}

// RecommendText handles POST /api/recommendations/text: free-text
// similarity ranking against the stated preferences.
func (h *Handler) RecommendText(w http.ResponseWriter, r *http.Request) {
	var req TextRecommendationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.logger.Debug().Err(err).Msg("rejected recommendation body")
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Error:    apiErr,
			Metadata: responseMetadata(nil),
		})
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Strategy:    recommend.StrategyText,
		Preferences: req.Preferences,
		TopN:        req.TopN,
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("text recommendation failed")
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "failed to generate recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"recommendations":  resp.Items,
			"total_candidates": resp.TotalCandidates,
		},
		Metadata: responseMetadata(&resp.Metadata),
	})
}

// NotFound is the fallback handler for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
}

// responseMetadata builds the envelope metadata, carrying engine timing
// through when available.
func responseMetadata(meta *recommend.ResponseMetadata) models.Metadata {
	m := models.Metadata{Timestamp: time.Now()}
	if meta != nil {
		m.QueryTimeMS = meta.LatencyMS
		m.RequestID = meta.RequestID
	}
	return m
}
