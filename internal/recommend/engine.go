// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// breakerName labels the scoring circuit breaker in logs and metrics.
const breakerName = "ibcf-scoring"

// Engine answers recommendation requests against an immutable Dataset.
// It resolves titles, runs the personalized scorer, falls back to the
// popularity ranker when scoring yields nothing, and joins the result with
// catalog metadata. It is safe for concurrent use.
type Engine struct {
	config *Config
	data   *Dataset
	logger zerolog.Logger

	scorer Scorer
	ranker Ranker

	// candidates are similarity targets that have a catalog entry.
	candidates []int

	// uncatalogued counts rated items the catalog does not know. The ranker
	// may return them and join drops them, so popularity lookups fetch this
	// many extra entries.
	uncatalogued int

	breaker *gobreaker.CircuitBreaker[ScoreResult]
	cache   cache.Store

	requests         atomic.Int64
	personalized     atomic.Int64
	fallbacks        atomic.Int64
	scoringFaults    atomic.Int64
	resolutionMisses atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithCache enables response caching through store. Caching also requires
// Config.Cache.Enabled.
func WithCache(store cache.Store) Option {
	return func(e *Engine) {
		e.cache = store
	}
}

// eligibleCounter is implemented by rankers that expose how many items
// passed their eligibility thresholds.
type eligibleCounter interface {
	Eligible() int
}

// NewEngine creates a recommendation engine. The dataset must be complete
// and is never modified.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, data *Dataset, scorer Scorer, ranker Ranker, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil || ranker == nil {
		return nil, errors.New("engine requires a scorer and a ranker")
	}

	e := &Engine{
		config: cfg,
		data:   data,
		logger: logger.With().Str("component", "recommend").Logger(),
		scorer: scorer,
		ranker: ranker,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, id := range data.Similarities.Items() {
		if _, ok := data.Catalog.Get(id); ok {
			e.candidates = append(e.candidates, id)
		}
	}

	for _, id := range data.Ratings.Items() {
		if _, ok := data.Catalog.Get(id); !ok {
			e.uncatalogued++
		}
	}

	if cfg.Breaker.Enabled {
		e.breaker = e.newBreaker()
	}

	e.logger.Info().
		Str("scorer", scorer.Name()).
		Str("ranker", ranker.Name()).
		Int("candidates", len(e.candidates)).
		Bool("breaker", cfg.Breaker.Enabled).
		Bool("cache", e.cachingEnabled()).
		Msg("recommendation engine ready")

	return e, nil
}

func (e *Engine) newBreaker() *gobreaker.CircuitBreaker[ScoreResult] {
	cfg := e.config.Breaker
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[ScoreResult](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFaults
		},
		// A caller going away says nothing about the scoring data.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})
}

// Recommend returns an ordered recommendation list for a set of title
// ratings. Ratings of zero or less mean "not rated" and are ignored. It
// never fails: when personalization is impossible the popularity ranking is
// returned and FallbackReason says why.
func (e *Engine) Recommend(ctx context.Context, ratings map[string]int, topN int) *Response {
	start := time.Now()
	e.requests.Add(1)

	topN = e.config.ClampTopN(topN)
	requestID := requestIDFromContext(ctx)
	logger := e.logger.With().
		Str("request_id", requestID).
		Int("top_n", topN).
		Logger()

	vector, unresolved := e.resolve(ratings)
	if len(unresolved) > 0 {
		e.resolutionMisses.Add(int64(len(unresolved)))
		metrics.RecordResolutionMisses(len(unresolved))
		logger.Debug().
			Strs("titles", unresolved).
			Err(ErrResolutionMiss).
			Msg("dropped unresolved titles")
	}

	key := e.cacheKey(vector, topN)
	if resp := e.tryGetCachedResponse(ctx, key, logger); resp != nil {
		resp.Resolved = vector.Len()
		resp.Unresolved = unresolved
		resp.Metadata = e.buildMetadata(requestID, topN, start, true)
		e.countSource(resp.Source)
		metrics.RecordRecommendation(string(resp.Source), string(resp.FallbackReason), len(resp.Items), time.Since(start))
		return resp
	}

	result := e.score(ctx, vector, topN)
	resp := &Response{
		Resolved:   vector.Len(),
		Unresolved: unresolved,
	}

	if !result.NeedsFallback() {
		resp.Items = e.join(result.Predictions, topN)
		resp.Source = SourceIBCF
	}
	if len(resp.Items) == 0 {
		reason := fallbackReason(result)
		if result.Outcome == OutcomeFault {
			e.scoringFaults.Add(1)
			logger.Warn().
				Err(result.Err).
				Str("reason", string(reason)).
				Msg("personalized scoring failed, using popularity")
		} else {
			logger.Debug().
				Int("resolved", vector.Len()).
				Msg("no personalized signal, using popularity")
		}
		resp.Items = e.popular(vector, topN)
		resp.Source = SourcePopularity
		resp.FallbackReason = reason
	}

	resp.Metadata = e.buildMetadata(requestID, topN, start, false)
	e.countSource(resp.Source)

	// Fault responses are transient and stay out of the cache.
	if resp.FallbackReason != ReasonScoringFault && resp.FallbackReason != ReasonBreakerOpen {
		e.cacheResponse(ctx, key, resp)
	}

	metrics.RecordRecommendation(string(resp.Source), string(resp.FallbackReason), len(resp.Items), time.Since(start))
	logger.Debug().
		Str("source", string(resp.Source)).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp
}

// Popular returns the non-personalized popularity list.
func (e *Engine) Popular(ctx context.Context, topN int) *Response {
	start := time.Now()
	topN = e.config.ClampTopN(topN)

	return &Response{
		Items:    e.join(e.ranker.Rank(topN+e.uncatalogued), topN),
		Source:   SourcePopularity,
		Metadata: e.buildMetadata(requestIDFromContext(ctx), topN, start, false),
	}
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() Stats {
	state := "disabled"
	if e.breaker != nil {
		state = e.breaker.State().String()
	}
	s := Stats{
		Requests:         e.requests.Load(),
		Personalized:     e.personalized.Load(),
		Fallbacks:        e.fallbacks.Load(),
		ScoringFaults:    e.scoringFaults.Load(),
		ResolutionMisses: e.resolutionMisses.Load(),
		CacheHits:        e.cacheHits.Load(),
		CacheMisses:      e.cacheMisses.Load(),
		BreakerState:     state,
		CatalogSize:      e.data.Catalog.Len(),
		Candidates:       len(e.candidates),
	}
	if ec, ok := e.ranker.(eligibleCounter); ok {
		s.PopularityEligible = ec.Eligible()
	}
	return s
}

// Dataset returns the data context the engine serves from.
func (e *Engine) Dataset() *Dataset {
	return e.data
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// resolve maps titles to catalog ids. Titles are visited in sorted order so
// two spellings of the same movie always keep the same rating.
func (e *Engine) resolve(ratings map[string]int) (RatingVector, []string) {
	titles := make([]string, 0, len(ratings))
	for title, r := range ratings {
		if r > 0 {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)

	byID := make(map[int]float64, len(titles))
	var unresolved []string
	for _, title := range titles {
		item, ok := e.data.Catalog.Resolve(title)
		if !ok {
			unresolved = append(unresolved, title)
			continue
		}
		if _, seen := byID[item.ID]; !seen {
			byID[item.ID] = float64(ratings[title])
		}
	}
	return NewRatingVector(byID), unresolved
}

// score runs the scorer through the circuit breaker.
func (e *Engine) score(ctx context.Context, vector RatingVector, topN int) ScoreResult {
	if vector.Len() == 0 {
		return NoSignalResult()
	}
	if e.breaker == nil {
		return e.predict(ctx, vector, topN)
	}

	result, err := e.breaker.Execute(func() (ScoreResult, error) {
		r := e.predict(ctx, vector, topN)
		if r.Outcome == OutcomeFault {
			return r, r.Err
		}
		return r, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return FaultResult(fmt.Errorf("%w: %w", ErrCircuitOpen, err))
	}
	return result
}

// predict calls the scorer and converts a panic into a scoring fault.
func (e *Engine) predict(ctx context.Context, vector RatingVector, topN int) (result ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			result = FaultResult(&ScoringFault{Err: fmt.Errorf("scorer panic: %v", r)})
		}
	}()

	if e.config.Scoring.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Scoring.Timeout)
		defer cancel()
	}
	return e.scorer.Predict(ctx, vector, e.candidates, topN)
}

// popular returns the popularity list without items the user rated.
func (e *Engine) popular(vector RatingVector, topN int) []ScoredItem {
	ranked := e.ranker.Rank(topN + vector.Len() + e.uncatalogued)
	preds := make([]Prediction, 0, len(ranked))
	for _, p := range ranked {
		if !vector.Known(p.ItemID) {
			preds = append(preds, p)
		}
	}
	return e.join(preds, topN)
}

// join attaches catalog metadata to predictions, keeping their order and
// dropping ids the catalog does not know.
func (e *Engine) join(preds []Prediction, topN int) []ScoredItem {
	items := make([]ScoredItem, 0, min(len(preds), topN))
	for _, p := range preds {
		if len(items) == topN {
			break
		}
		item, ok := e.data.Catalog.Get(p.ItemID)
		if !ok {
			continue
		}
		items = append(items, ScoredItem{Item: item, Score: p.Score})
	}
	return items
}

func fallbackReason(result ScoreResult) FallbackReason {
	switch {
	case result.Outcome != OutcomeFault:
		return ReasonNoSignal
	case errors.Is(result.Err, ErrCircuitOpen):
		return ReasonBreakerOpen
	default:
		return ReasonScoringFault
	}
}

func (e *Engine) countSource(source Source) {
	if source == SourceIBCF {
		e.personalized.Add(1)
	} else {
		e.fallbacks.Add(1)
	}
}

func (e *Engine) buildMetadata(requestID string, topN int, start time.Time, cacheHit bool) ResponseMetadata {
	return ResponseMetadata{
		RequestID: requestID,
		TopN:      topN,
		LatencyMS: time.Since(start).Milliseconds(),
		CacheHit:  cacheHit,
		Timestamp: time.Now(),
	}
}

func (e *Engine) cachingEnabled() bool {
	return e.cache != nil && e.config.Cache.Enabled
}

// cacheKey identifies a request by its resolved ratings, so different
// spellings of the same titles share an entry.
func (e *Engine) cacheKey(vector RatingVector, topN int) string {
	if !e.cachingEnabled() {
		return ""
	}
	type ratedItem struct {
		ID     int     `json:"id"`
		Rating float64 `json:"r"`
	}
	params := struct {
		Ratings []ratedItem `json:"ratings"`
		TopN    int         `json:"top_n"`
	}{TopN: topN}
	vector.Each(func(item int, rating float64) {
		params.Ratings = append(params.Ratings, ratedItem{ID: item, Rating: rating})
	})
	return cache.GenerateKey("recommend", params)
}

// tryGetCachedResponse returns a decoded cached response, or nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) tryGetCachedResponse(ctx context.Context, key string, logger zerolog.Logger) *Response {
	if key == "" {
		return nil
	}

	data, ok := e.cache.Get(ctx, key)
	if !ok {
		e.cacheMisses.Add(1)
		metrics.RecordCacheLookup(false)
		return nil
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		e.cacheMisses.Add(1)
		metrics.RecordCacheLookup(false)
		logger.Warn().Err(err).Msg("discarding undecodable cache entry")
		return nil
	}

	e.cacheHits.Add(1)
	metrics.RecordCacheLookup(true)
	logger.Debug().Msg("cache hit")
	return &resp
}

func (e *Engine) cacheResponse(ctx context.Context, key string, resp *Response) {
	if key == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode response for cache")
		return
	}
	e.cache.Set(ctx, key, data, e.config.Cache.TTL)
}

// requestIDFromContext reuses the HTTP request id when there is one.
func requestIDFromContext(ctx context.Context) string {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
