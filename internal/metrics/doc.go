// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered with the default registry through promauto and
exposed by the API at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendations:
  - recommend_requests_total{source}: requests by result source (ibcf, popularity)
  - recommend_fallbacks_total{reason}: popularity fallbacks by reason
  - recommend_duration_seconds{source}: end-to-end engine latency
  - recommend_list_length: items returned per request
  - recommend_resolution_misses_total: requested titles missing from the catalog
  - recommend_cache_lookups_total{result}: response cache hits and misses

Circuit breaker:
  - circuit_breaker_state{name}: 0 closed, 1 half-open, 2 open
  - circuit_breaker_transitions_total{name,from,to}

Dataset:
  - dataset_records{source}: movies, ratings and similarity entries loaded
  - dataset_load_duration_seconds

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Endpoint labels use the chi route pattern (for example /api/v1/movies/{id})
so label cardinality stays bounded.
*/
package metrics
