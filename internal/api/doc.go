// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP/JSON interface to the recommendation engine.

Routes are served by a chi router:

	POST /api/v1/recommendations          personalized list for a set of title ratings
	GET  /api/v1/recommendations/popular  popularity list (?top_n=)
	GET  /api/v1/movies                   full catalog ordered by id
	GET  /api/v1/movies/{id}              one movie
	GET  /api/v1/genres                   distinct genres
	GET  /api/v1/stats                    engine counters and route latencies
	GET  /api/v1/health/live              liveness probe
	GET  /api/v1/health/ready             readiness probe with dataset sizes
	GET  /metrics                         Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Errors carry a
machine-readable code (VALIDATION_ERROR, NOT_FOUND, RATE_LIMIT_EXCEEDED,
SERVICE_UNAVAILABLE).

Middleware Stack:

  - middleware.RequestID, chi RealIP, Recoverer, CORS and gzip Compress (global)
  - httprate per-IP limiting, security headers, Prometheus metrics and the
    performance monitor on /api/v1

The recommendation endpoint only fails with 400 when the body is malformed
or a value is out of range; scoring problems surface as a popularity list
with a fallback_reason instead of an error status.
*/
package api
