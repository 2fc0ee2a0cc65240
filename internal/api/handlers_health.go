// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse} "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthResponse{
			Status:    "healthy",
			Version:   Version,
			Uptime:    time.Since(h.startTime).Seconds(),
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if a dataset is loaded and the catalog is non-empty.
//
// @Summary Kubernetes readiness probe
// @Description Reports dataset sizes. Returns 503 when no dataset is being served.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse} "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	if h.engine == nil || h.engine.Dataset() == nil || h.engine.Dataset().Catalog.Len() == 0 {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data: models.HealthResponse{
				Status:    "unhealthy",
				Version:   Version,
				Uptime:    time.Since(h.startTime).Seconds(),
				Timestamp: time.Now(),
			},
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    models.ErrCodeUnavailable,
				Message: "Dataset not loaded",
			},
		})
		return
	}

	summary := h.engine.Dataset().Summary()
	stats := h.engine.Stats()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthResponse{
			Status:  "healthy",
			Version: Version,
			Uptime:  time.Since(h.startTime).Seconds(),
			Dataset: &models.DatasetHealth{
				Movies:             summary.Movies,
				Users:              summary.Users,
				Ratings:            summary.Ratings,
				SimilarityEntries:  summary.SimilarityEntries,
				Candidates:         stats.Candidates,
				PopularityEligible: stats.PopularityEligible,
				BreakerState:       stats.BreakerState,
				LoadedAt:           summary.LoadedAt,
			},
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
