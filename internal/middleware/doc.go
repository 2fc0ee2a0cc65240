// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: accepts or generates X-Request-ID and stores it in the logging context
  - Prometheus Metrics: request counts, latency histograms and in-flight gauge
  - Performance Monitor: sliding-window latency percentiles per route

All components label requests by the chi route pattern (for example
/api/v1/movies/{id}) rather than the raw URL path, which keeps metric
cardinality bounded.

Usage Example:

	perfMon := middleware.NewPerformanceMonitor(1000, 500*time.Millisecond)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
	    return middleware.RequestID(next.ServeHTTP)
	})
	r.Use(func(next http.Handler) http.Handler {
	    return middleware.PrometheusMetrics(next.ServeHTTP)
	})
	r.Use(perfMon.Middleware)

	stats := perfMon.Stats() // []EndpointStats, busiest first

Thread Safety:

PerformanceMonitor is safe for concurrent use. Record takes a write lock;
Stats copies samples under a read lock and computes percentiles outside it.
*/
package middleware
