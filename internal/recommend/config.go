// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains list length limits.
	Limits LimitsConfig `json:"limits"`

	// Popularity contains the popularity fallback thresholds.
	Popularity PopularityConfig `json:"popularity"`

	// Scoring contains IBCF scoring parameters.
	Scoring ScoringConfig `json:"scoring"`

	// Breaker contains circuit breaker parameters for IBCF scoring.
	Breaker BreakerConfig `json:"breaker"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains list length limits.
type LimitsConfig struct {
	// DefaultTopN is used when a request does not ask for a length.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the requested length.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`
}

// PopularityConfig contains the eligibility thresholds for the popularity ranking.
type PopularityConfig struct {
	// MinSupport is the minimum number of ratings an item needs.
	// Default: 50.
	MinSupport int `json:"min_support"`

	// MinAverage is the minimum mean rating an item needs.
	// Default: 3.5.
	MinAverage float64 `json:"min_average"`
}

// ScoringConfig contains IBCF scoring parameters.
type ScoringConfig struct {
	// StrictSimilarityRange treats similarities outside [-1, 1] as a
	// scoring fault instead of using them.
	// Default: true.
	StrictSimilarityRange bool `json:"strict_similarity_range"`

	// Timeout bounds a single scoring pass. Zero disables the bound.
	// Default: 2s.
	Timeout time.Duration `json:"timeout"`
}

// BreakerConfig contains circuit breaker parameters.
type BreakerConfig struct {
	// Enabled wraps IBCF scoring in a circuit breaker.
	// Default: true.
	Enabled bool `json:"enabled"`

	// ConsecutiveFaults trips the breaker.
	// Default: 5.
	ConsecutiveFaults uint32 `json:"consecutive_faults"`

	// OpenTimeout is how long the breaker stays open before probing.
	// Default: 30s.
	OpenTimeout time.Duration `json:"open_timeout"`

	// HalfOpenRequests is the number of probe requests allowed half-open.
	// Default: 1.
	HalfOpenRequests uint32 `json:"half_open_requests"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN: 10,
			MaxTopN:     100,
		},
		Popularity: PopularityConfig{
			MinSupport: 50,
			MinAverage: 3.5,
		},
		Scoring: ScoringConfig{
			StrictSimilarityRange: true,
			Timeout:               2 * time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:           true,
			ConsecutiveFaults: 5,
			OpenTimeout:       30 * time.Second,
			HalfOpenRequests:  1,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d",
			c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}

	if c.Popularity.MinSupport < 0 {
		return fmt.Errorf("popularity.min_support must be non-negative, got %d", c.Popularity.MinSupport)
	}
	if c.Popularity.MinAverage < 0 {
		return fmt.Errorf("popularity.min_average must be non-negative, got %f", c.Popularity.MinAverage)
	}

	if c.Scoring.Timeout < 0 {
		return fmt.Errorf("scoring.timeout must be non-negative, got %v", c.Scoring.Timeout)
	}

	if c.Breaker.Enabled {
		if c.Breaker.ConsecutiveFaults < 1 {
			return fmt.Errorf("breaker.consecutive_faults must be positive, got %d", c.Breaker.ConsecutiveFaults)
		}
		if c.Breaker.OpenTimeout <= 0 {
			return fmt.Errorf("breaker.open_timeout must be positive, got %v", c.Breaker.OpenTimeout)
		}
		if c.Breaker.HalfOpenRequests < 1 {
			return fmt.Errorf("breaker.half_open_requests must be positive, got %d", c.Breaker.HalfOpenRequests)
		}
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// all nested structs hold value types only
	cp := *c
	return &cp
}

// ClampTopN applies the default and maximum list lengths to a requested length.
func (c *Config) ClampTopN(topN int) int {
	if topN <= 0 {
		return c.Limits.DefaultTopN
	}
	if topN > c.Limits.MaxTopN {
		return c.Limits.MaxTopN
	}
	return topN
}
