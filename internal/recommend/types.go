// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

// RatingVector holds one user's known ratings keyed by item id.
// Only ratings above zero are kept; zero means "unrated".
// A RatingVector is immutable once built.
type RatingVector struct {
	ids     []int // ascending
	ratings map[int]float64
}

// NewRatingVector builds a vector from item -> rating pairs, dropping
// entries with a rating of zero or less.
func NewRatingVector(ratings map[int]float64) RatingVector {
	v := RatingVector{ratings: make(map[int]float64, len(ratings))}
	for id, r := range ratings {
		if r > 0 {
			v.ratings[id] = r
			v.ids = append(v.ids, id)
		}
	}
	sort.Ints(v.ids)
	return v
}

// Len returns the number of known ratings.
func (v RatingVector) Len() int {
	return len(v.ids)
}

// Rating returns the known rating for item.
func (v RatingVector) Rating(item int) (float64, bool) {
	r, ok := v.ratings[item]
	return r, ok
}

// Known reports whether the user rated item.
func (v RatingVector) Known(item int) bool {
	_, ok := v.ratings[item]
	return ok
}

// IDs returns the rated item ids in ascending order.
func (v RatingVector) IDs() []int {
	out := make([]int, len(v.ids))
	copy(out, v.ids)
	return out
}

// Each calls fn for every known rating in ascending item order.
func (v RatingVector) Each(fn func(item int, rating float64)) {
	for _, id := range v.ids {
		fn(id, v.ratings[id])
	}
}

// Prediction is a scored item produced by a scorer or ranker.
type Prediction struct {
	// ItemID identifies the predicted item.
	ItemID int `json:"item_id"`

	// Score is the predicted rating (IBCF) or support count (popularity).
	Score float64 `json:"score"`
}

// SortPredictions orders predictions by score descending, then item id
// ascending so equal scores always come out in the same order.
func SortPredictions(preds []Prediction) {
	sort.Slice(preds, func(i, j int) bool {
		if preds[i].Score != preds[j].Score {
			return preds[i].Score > preds[j].Score
		}
		return preds[i].ItemID < preds[j].ItemID
	})
}

// Outcome tags the result of a personalization attempt.
type Outcome int

const (
	// OutcomePredictions means at least one prediction was produced.
	OutcomePredictions Outcome = iota
	// OutcomeNoSignal means the scorer ran cleanly but had nothing to say.
	OutcomeNoSignal
	// OutcomeFault means scoring hit bad data or was interrupted.
	OutcomeFault
)

// String returns the outcome name used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomePredictions:
		return "predictions"
	case OutcomeNoSignal:
		return "no_signal"
	case OutcomeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// ScoreResult is what a Scorer returns: either predictions or an explicit
// request to fall back, with the reason.
type ScoreResult struct {
	// Outcome tags which of the cases below applies.
	Outcome Outcome

	// Predictions is non-empty only for OutcomePredictions.
	Predictions []Prediction

	// Err explains OutcomeNoSignal and OutcomeFault results.
	Err error
}

// PredictionsResult wraps a non-empty prediction list.
func PredictionsResult(preds []Prediction) ScoreResult {
	if len(preds) == 0 {
		return NoSignalResult()
	}
	return ScoreResult{Outcome: OutcomePredictions, Predictions: preds}
}

// NoSignalResult reports that no personalized prediction was possible.
func NoSignalResult() ScoreResult {
	return ScoreResult{Outcome: OutcomeNoSignal, Err: ErrNoPersonalizationSignal}
}

// FaultResult reports a scoring fault.
func FaultResult(err error) ScoreResult {
	return ScoreResult{Outcome: OutcomeFault, Err: err}
}

// NeedsFallback reports whether the orchestrator must use popularity instead.
func (r ScoreResult) NeedsFallback() bool {
	return r.Outcome != OutcomePredictions
}

// Scorer produces personalized predictions for a rating vector.
type Scorer interface {
	// Name returns the scorer identifier used in responses and metrics.
	Name() string

	// Predict scores every candidate the user has not rated and returns at
	// most topN predictions in ranking order.
	Predict(ctx context.Context, vector RatingVector, candidates []int, topN int) ScoreResult
}

// Ranker produces a user-independent ranking.
type Ranker interface {
	// Name returns the ranker identifier used in responses and metrics.
	Name() string

	// Rank returns at most topN predictions in ranking order. It never pads.
	Rank(topN int) []Prediction
}

// ScoredItem is a catalog item with the score that placed it in a list.
type ScoredItem struct {
	catalog.Item

	// Score is the predicted rating or popularity support.
	Score float64 `json:"score"`
}

// Source names where a recommendation list came from.
type Source string

const (
	// SourceIBCF marks personalized item-based CF results.
	SourceIBCF Source = "ibcf"
	// SourcePopularity marks popularity ranking results.
	SourcePopularity Source = "popularity"
)

// FallbackReason explains why personalization was not used.
type FallbackReason string

const (
	// ReasonNone is used when personalized results were returned.
	ReasonNone FallbackReason = ""
	// ReasonNoSignal means IBCF produced zero predictions.
	ReasonNoSignal FallbackReason = "no_signal"
	// ReasonScoringFault means IBCF failed on the data it read.
	ReasonScoringFault FallbackReason = "scoring_fault"
	// ReasonBreakerOpen means IBCF was skipped after repeated faults.
	ReasonBreakerOpen FallbackReason = "breaker_open"
)

// Response is the orchestrator's answer to a recommendation request.
type Response struct {
	// Items is the ordered recommendation list.
	Items []ScoredItem `json:"items"`

	// Source reports which algorithm produced Items.
	Source Source `json:"source"`

	// FallbackReason is set when Source is SourcePopularity on a
	// personalized request.
	FallbackReason FallbackReason `json:"fallback_reason,omitempty"`

	// Resolved is the number of positive ratings matched to catalog items.
	Resolved int `json:"resolved"`

	// Unresolved lists titles with a positive rating that matched nothing.
	Unresolved []string `json:"unresolved,omitempty"`

	// Metadata contains request bookkeeping.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about how a response was produced.
type ResponseMetadata struct {
	// RequestID correlates the response with logs.
	RequestID string `json:"request_id"`

	// TopN is the effective list length requested.
	TopN int `json:"top_n"`

	// LatencyMS is the time spent producing the response.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit is true when the list came from the response cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was produced.
	Timestamp time.Time `json:"timestamp"`
}

// Stats is a point-in-time snapshot of orchestrator counters.
type Stats struct {
	Requests           int64  `json:"requests"`
	Personalized       int64  `json:"personalized"`
	Fallbacks          int64  `json:"fallbacks"`
	ScoringFaults      int64  `json:"scoring_faults"`
	ResolutionMisses   int64  `json:"resolution_misses"`
	CacheHits          int64  `json:"cache_hits"`
	CacheMisses        int64  `json:"cache_misses"`
	BreakerState       string `json:"breaker_state"`
	CatalogSize        int    `json:"catalog_size"`
	Candidates         int    `json:"candidates"`
	PopularityEligible int    `json:"popularity_eligible"`
}
