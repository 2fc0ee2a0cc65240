// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server application.

Marquee recommends movies to a user from a handful of ratings using
item-based collaborative filtering over a precomputed item-item similarity
matrix. When personalized scoring produces nothing, or fails, it answers with
a popularity ranking instead, so every well-formed request gets a list.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("marquee")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server ("http-server")
	└── MaintenanceSupervisor ("maintenance-layer")
	    ├── Cache janitor ("cache-janitor", memory backend only)
	    └── Stats reporter ("stats-reporter", SUPERVISOR_STATS_INTERVAL > 0)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Dataset: movies, ratings and similarity files loaded concurrently
 4. Response cache: in-process LRU or Redis
 5. Engine: item-based scorer, popularity ranker and circuit breaker
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

The dataset is immutable after step 3. A dataset that fails to load or fails
its consistency checks stops the process before the server listens.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8501               # HTTP server port
	HTTP_HOST=0.0.0.0
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Data
	MOVIES_PATH=data/movies.dat          # id::title::genres, Latin-1
	RATINGS_PATH=data/ratings.csv        # user,movie,rating
	SIMILARITY_PATH=data/similarity.csv  # labelled square matrix
	IMAGE_BASE_URL=https://...           # poster URL prefix

	# Engine
	RECOMMEND_MIN_SUPPORT=50     # popularity fallback thresholds
	RECOMMEND_MIN_AVERAGE=3.5
	RECOMMEND_BREAKER_ENABLED=true

	# Cache
	CACHE_BACKEND=memory         # memory or redis
	REDIS_ADDR=localhost:6379

See internal/config for the complete reference.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (HTTP_SHUTDOWN_TIMEOUT)
 3. Stops maintenance services
 4. Closes the Redis client when that backend is in use
 5. Reports any services that failed to stop

# Usage Examples

Development:

	export LOG_FORMAT=console LOG_LEVEL=debug
	go run ./cmd/server

Shared cache across replicas:

	export CACHE_BACKEND=redis REDIS_ADDR=redis:6379
	./marquee

Request recommendations:

	curl -X POST localhost:8501/api/v1/recommendations \
	  -d '{"ratings": {"Toy Story (1995)": 5, "Heat (1995)": 4}, "top_n": 5}'

# See Also

  - internal/config: Configuration management
  - internal/recommend: Engine and dataset loading
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
*/
package main
