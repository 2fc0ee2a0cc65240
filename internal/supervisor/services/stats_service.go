// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/recommend"
)

// StatsSource provides engine counters. *recommend.Engine satisfies it.
type StatsSource interface {
	Stats() recommend.Stats
}

// StatsReporterService periodically logs engine counters so fallback and
// fault rates are visible in logs without scraping /metrics.
type StatsReporterService struct {
	source   StatsSource
	interval time.Duration
	logger   zerolog.Logger
	name     string

	last recommend.Stats
}

// NewStatsReporterService creates a reporter. A non-positive interval
// defaults to five minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsReporterService(source StatsSource, interval time.Duration, logger zerolog.Logger) *StatsReporterService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StatsReporterService{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "stats-reporter").Logger(),
		name:     "stats-reporter",
	}
}

// Serve implements suture.Service. It logs once per interval until the
// context is canceled.
func (s *StatsReporterService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("stats reporter running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

// report logs the current counters and the change since the last report.
func (s *StatsReporterService) report() {
	cur := s.source.Stats()
	prev := s.last
	s.last = cur

	s.logger.Info().
		Int64("requests", cur.Requests).
		Int64("requests_delta", cur.Requests-prev.Requests).
		Int64("personalized", cur.Personalized).
		Int64("fallbacks", cur.Fallbacks).
		Int64("fallbacks_delta", cur.Fallbacks-prev.Fallbacks).
		Int64("scoring_faults", cur.ScoringFaults).
		Int64("resolution_misses", cur.ResolutionMisses).
		Int64("cache_hits", cur.CacheHits).
		Int64("cache_misses", cur.CacheMisses).
		Str("breaker_state", cur.BreakerState).
		Msg("engine stats")
}

// String implements fmt.Stringer for suture log messages.
func (s *StatsReporterService) String() string {
	return s.name
}
