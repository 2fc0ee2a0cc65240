// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// StatsResponse is the payload of GET /api/v1/stats.
type StatsResponse struct {
	Engine    recommend.Stats            `json:"engine"`
	Dataset   recommend.DatasetSummary   `json:"dataset"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
}

// Recommend handles POST /api/v1/recommendations
//
// Ratings whose titles are not in the catalog are reported in "unresolved"
// and otherwise ignored. The endpoint only fails on a malformed body.
//
// @Summary Get personalized recommendations
// @Description Scores unseen movies by item-based collaborative filtering, falling back to popularity.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.RecommendationRequest true "Title ratings and list length"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResponse}
// @Failure 400 {object} models.APIResponse "Malformed body or invalid rating"
// @Router /recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body: "+sanitizeLogValue(err.Error()), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resp := h.engine.Recommend(r.Context(), req.Ratings, req.TopN)

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.toRecommendationResponse(resp),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      resp.Metadata.CacheHit,
			RequestID:   resp.Metadata.RequestID,
		},
	})
}

// Popular handles GET /api/v1/recommendations/popular
//
// @Summary Get the popularity list
// @Description Returns the most-rated movies among those meeting the support and average thresholds.
// @Tags Recommendations
// @Produce json
// @Param top_n query int false "List length (0 = default, max 100)"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResponse}
// @Failure 400 {object} models.APIResponse "Invalid top_n"
// @Router /recommendations/popular [get]
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	topN, err := parseIntStrict(r, "top_n", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	req := models.PopularRequest{TopN: topN}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resp := h.engine.Popular(r.Context(), req.TopN)
	respondSuccess(w, r, h.toRecommendationResponse(resp), start)
}

// Stats handles GET /api/v1/stats
//
// @Summary Get service statistics
// @Description Engine counters, dataset sizes and per-route latency percentiles.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=StatsResponse}
// @Router /stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats := StatsResponse{
		Engine:    h.engine.Stats(),
		Dataset:   h.engine.Dataset().Summary(),
		Endpoints: []middleware.EndpointStats{},
	}
	if h.perfMon != nil {
		stats.Endpoints = h.perfMon.Stats()
	}

	w.Header().Set("Cache-Control", "no-store")
	respondSuccess(w, r, stats, start)
}
