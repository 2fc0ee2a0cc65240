// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml or /etc/marquee/config.yaml
 3. Environment variables

# Configuration Structure

  - ServerConfig: HTTP listen address and timeouts
  - LoggingConfig: zerolog level, format and caller reporting
  - DataConfig: movies.dat, rating matrix and similarity matrix locations
  - RecommendConfig: list limits, popularity thresholds, scoring timeout, circuit breaker
  - CacheConfig: response cache backend (memory or redis) and TTL
  - SecurityConfig: CORS origins and per-IP rate limiting
  - SupervisorConfig: suture restart policy

# Environment Variables

Server:
  - HTTP_PORT: Listen port (default: 8501)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Request read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown bound (default: 10s)

Data:
  - MOVIES_PATH: Catalog file (default: data/movies.dat)
  - RATINGS_PATH: Wide user x movie rating matrix (default: data/ratings.csv)
  - SIMILARITY_PATH: Wide movie x movie similarity matrix (default: data/similarity.csv)
  - IMAGE_BASE_URL: Poster image base URL

Recommendation:
  - RECOMMEND_DEFAULT_TOP_N, RECOMMEND_MAX_TOP_N: List length limits (10, 100)
  - RECOMMEND_MIN_SUPPORT, RECOMMEND_MIN_AVERAGE: Popularity thresholds (50, 3.5)
  - RECOMMEND_STRICT_SIMILARITY: Treat similarities outside [-1, 1] as faults (true)
  - RECOMMEND_SCORING_TIMEOUT: Bound on one scoring pass (2s)
  - RECOMMEND_BREAKER_ENABLED, RECOMMEND_BREAKER_FAULTS,
    RECOMMEND_BREAKER_OPEN_TIMEOUT, RECOMMEND_BREAKER_HALF_OPEN

Cache:
  - CACHE_ENABLED, CACHE_BACKEND (memory|redis), CACHE_MAX_ENTRIES, CACHE_TTL
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_PREFIX

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Supervisor:
  - SUPERVISOR_FAILURE_THRESHOLD, SUPERVISOR_FAILURE_DECAY, SUPERVISOR_FAILURE_BACKOFF
  - SUPERVISOR_SHUTDOWN_TIMEOUT
  - SUPERVISOR_STATS_INTERVAL: Engine counter log interval (default: 5m, 0 disables)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engineCfg := cfg.EngineConfig()

Load validates the result; an invalid value fails startup with a message
naming the environment variable to fix.
*/
package config
