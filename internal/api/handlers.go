// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Version is reported by the health endpoints. It is set at build time.
var Version = "dev"

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Liveness and readiness probes
//   - handlers_recommend.go: Recommendation and stats endpoints
//   - handlers_movies.go: Catalog browsing endpoints
type Handler struct {
	engine       *recommend.Engine
	imageBaseURL string
	startTime    time.Time
	perfMon      *middleware.PerformanceMonitor
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithImageBaseURL overrides the poster image base URL.
func WithImageBaseURL(base string) HandlerOption {
	return func(h *Handler) {
		if base != "" {
			h.imageBaseURL = base
		}
	}
}

// WithPerformanceMonitor sets the monitor whose statistics the stats
// endpoint reports. The router wires the same monitor as middleware.
func WithPerformanceMonitor(pm *middleware.PerformanceMonitor) HandlerOption {
	return func(h *Handler) {
		h.perfMon = pm
	}
}

// NewHandler creates a new API handler serving from engine.
//
// Example:
//
//	handler := api.NewHandler(engine, api.WithImageBaseURL(cfg.Data.ImageBaseURL))
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
//	http.ListenAndServe(":8501", router.SetupChi())
func NewHandler(engine *recommend.Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:       engine,
		imageBaseURL: catalog.DefaultImageBaseURL,
		startTime:    time.Now(),
		perfMon:      middleware.NewPerformanceMonitor(1000, 500*time.Millisecond),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PerformanceMonitor returns the monitor the router should record into.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// toMovie converts a catalog item to its API form.
func (h *Handler) toMovie(item catalog.Item) models.Movie {
	genres := item.Genres
	if genres == nil {
		genres = []string{}
	}
	return models.Movie{
		ID:       item.ID,
		Title:    item.Title,
		Genres:   genres,
		ImageURL: catalog.ImageURLWithBase(h.imageBaseURL, item.ID),
	}
}

// toRecommendationResponse converts an engine response to its API form.
func (h *Handler) toRecommendationResponse(resp *recommend.Response) models.RecommendationResponse {
	items := make([]models.RecommendedMovie, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = models.RecommendedMovie{
			Movie: h.toMovie(it.Item),
			Score: it.Score,
		}
	}
	return models.RecommendationResponse{
		Items:          items,
		Source:         string(resp.Source),
		FallbackReason: string(resp.FallbackReason),
		Resolved:       resp.Resolved,
		Unresolved:     resp.Unresolved,
		TopN:           resp.Metadata.TopN,
	}
}
