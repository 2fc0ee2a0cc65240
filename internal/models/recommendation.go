// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// RecommendationRequest is the body of POST /api/v1/recommendations.
//
// Ratings maps catalog titles to star ratings. A rating of 0 means the
// movie was not rated and is ignored.
//
//	{
//	  "ratings": {"Toy Story (1995)": 5, "Jumanji (1995)": 3},
//	  "top_n": 10
//	}
type RecommendationRequest struct {
	Ratings map[string]int `json:"ratings" validate:"dive,keys,notblank,endkeys,min=0,max=5"`
	TopN    int            `json:"top_n" validate:"min=0,max=100"`
}

// PopularRequest holds the query parameters of GET /api/v1/recommendations/popular.
type PopularRequest struct {
	TopN int `json:"top_n" validate:"min=0,max=100"`
}

// Movie is a catalog entry as returned by the API.
type Movie struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Genres   []string `json:"genres"`
	ImageURL string   `json:"image_url"`
}

// RecommendedMovie is a Movie with the score that ranked it.
// Score is a predicted rating for ibcf lists and a rating count for
// popularity lists.
type RecommendedMovie struct {
	Movie
	Score float64 `json:"score"`
}

// RecommendationResponse is the data payload of a recommendation list.
//
//	{
//	  "items": [{"id": 1, "title": "Toy Story (1995)", "genres": ["Animation"], "image_url": "...", "score": 4.6}],
//	  "source": "popularity",
//	  "fallback_reason": "no_signal",
//	  "resolved": 0,
//	  "unresolved": ["Not A Movie (2099)"],
//	  "top_n": 10
//	}
type RecommendationResponse struct {
	Items          []RecommendedMovie `json:"items"`
	Source         string             `json:"source"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	Resolved       int                `json:"resolved"`
	Unresolved     []string           `json:"unresolved,omitempty"`
	TopN           int                `json:"top_n"`
}

// MoviesResponse lists catalog entries.
type MoviesResponse struct {
	Movies []Movie `json:"movies"`
	Total  int     `json:"total"`
}

// GenresResponse lists the distinct genres in the catalog.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status    string         `json:"status"` // "healthy" or "unhealthy"
	Version   string         `json:"version,omitempty"`
	Uptime    float64        `json:"uptime_seconds"`
	Dataset   *DatasetHealth `json:"dataset,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// DatasetHealth summarizes the loaded dataset for readiness checks.
type DatasetHealth struct {
	Movies             int       `json:"movies"`
	Users              int       `json:"users"`
	Ratings            int       `json:"ratings"`
	SimilarityEntries  int       `json:"similarity_entries"`
	Candidates         int       `json:"candidates"`
	PopularityEligible int       `json:"popularity_eligible"`
	BreakerState       string    `json:"breaker_state"`
	LoadedAt           time.Time `json:"loaded_at"`
}
