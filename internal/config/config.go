// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Data       DataConfig       `koanf:"data"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Cache      CacheConfig      `koanf:"cache"`
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Caller bool   `koanf:"caller"`
}

// DataConfig locates the three data sources loaded at startup
type DataConfig struct {
	MoviesPath     string `koanf:"movies_path"`
	RatingsPath    string `koanf:"ratings_path"`
	SimilarityPath string `koanf:"similarity_path"`
	ImageBaseURL   string `koanf:"image_base_url"`
}

// RecommendConfig holds recommendation engine tuning
type RecommendConfig struct {
	DefaultTopN           int           `koanf:"default_top_n"`
	MaxTopN               int           `koanf:"max_top_n"`
	MinSupport            int           `koanf:"min_support"`
	MinAverage            float64       `koanf:"min_average"`
	StrictSimilarityRange bool          `koanf:"strict_similarity_range"`
	ScoringTimeout        time.Duration `koanf:"scoring_timeout"`
	BreakerEnabled        bool          `koanf:"breaker_enabled"`
	BreakerFaults         uint32        `koanf:"breaker_faults"`
	BreakerOpenTimeout    time.Duration `koanf:"breaker_open_timeout"`
	BreakerHalfOpen       uint32        `koanf:"breaker_half_open"`
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Backend       string        `koanf:"backend"` // memory, redis
	MaxEntries    int           `koanf:"max_entries"`
	TTL           time.Duration `koanf:"ttl"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	RedisPrefix   string        `koanf:"redis_prefix"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// SupervisorConfig holds suture restart policy
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`

	// StatsInterval is how often engine counters are logged. 0 disables it.
	StatsInterval time.Duration `koanf:"stats_interval"`
}

// Load reads configuration with the following precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// EngineConfig converts the recommend section into the engine's config.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultTopN: c.Recommend.DefaultTopN,
			MaxTopN:     c.Recommend.MaxTopN,
		},
		Popularity: recommend.PopularityConfig{
			MinSupport: c.Recommend.MinSupport,
			MinAverage: c.Recommend.MinAverage,
		},
		Scoring: recommend.ScoringConfig{
			StrictSimilarityRange: c.Recommend.StrictSimilarityRange,
			Timeout:               c.Recommend.ScoringTimeout,
		},
		Breaker: recommend.BreakerConfig{
			Enabled:           c.Recommend.BreakerEnabled,
			ConsecutiveFaults: c.Recommend.BreakerFaults,
			OpenTimeout:       c.Recommend.BreakerOpenTimeout,
			HalfOpenRequests:  c.Recommend.BreakerHalfOpen,
		},
		Cache: recommend.CacheConfig{
			Enabled: c.Cache.Enabled,
			TTL:     c.Cache.TTL,
		},
	}
}

// CacheStoreConfig converts the cache section into a cache.Config.
func (c *Config) CacheStoreConfig() cache.Config {
	return cache.Config{
		Backend:    cache.Backend(c.Cache.Backend),
		MaxEntries: c.Cache.MaxEntries,
		DefaultTTL: c.Cache.TTL,
		Redis: cache.RedisConfig{
			Addr:      c.Cache.RedisAddr,
			Password:  c.Cache.RedisPassword,
			DB:        c.Cache.RedisDB,
			KeyPrefix: c.Cache.RedisPrefix,
		},
	}
}

// DataPaths returns the dataset locations for recommend.LoadDataset.
func (c *Config) DataPaths() recommend.DataPaths {
	return recommend.DataPaths{
		Movies:     c.Data.MoviesPath,
		Ratings:    c.Data.RatingsPath,
		Similarity: c.Data.SimilarityPath,
	}
}

// LoggerConfig converts the logging section into a logging.Config.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	if c.Logging.Format != "" {
		cfg.Format = c.Logging.Format
	}
	cfg.Caller = c.Logging.Caller
	return cfg
}
