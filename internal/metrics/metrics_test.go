// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordRecommendation tests per-source counters and fallback reasons
func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		reason string
		items  int
	}{
		{name: "personalized", source: "ibcf", reason: "", items: 10},
		{name: "no signal fallback", source: "popularity", reason: "no_signal", items: 10},
		{name: "fault fallback", source: "popularity", reason: "scoring_fault", items: 3},
		{name: "breaker fallback", source: "popularity", reason: "breaker_open", items: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues(tt.source))
			var beforeReason float64
			if tt.reason != "" {
				beforeReason = testutil.ToFloat64(RecommendFallbacksTotal.WithLabelValues(tt.reason))
			}

			RecordRecommendation(tt.source, tt.reason, tt.items, 2*time.Millisecond)

			if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues(tt.source)); got != before+1 {
				t.Errorf("requests{%s} = %v, want %v", tt.source, got, before+1)
			}
			if tt.reason != "" {
				if got := testutil.ToFloat64(RecommendFallbacksTotal.WithLabelValues(tt.reason)); got != beforeReason+1 {
					t.Errorf("fallbacks{%s} = %v, want %v", tt.reason, got, beforeReason+1)
				}
			}
		})
	}
}

func TestRecordResolutionMisses(t *testing.T) {
	before := testutil.ToFloat64(RecommendResolutionMisses)
	RecordResolutionMisses(3)
	RecordResolutionMisses(0)
	if got := testutil.ToFloat64(RecommendResolutionMisses); got != before+3 {
		t.Errorf("resolution misses = %v, want %v", got, before+3)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("hit")); got != hits+1 {
		t.Errorf("cache hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("miss")); got != misses+2 {
		t.Errorf("cache misses = %v, want %v", got, misses+2)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     float64
	}{
		{"closed", "open", 2},
		{"open", "half-open", 1},
		{"half-open", "closed", 0},
	}

	for _, tt := range tests {
		RecordBreakerTransition("test", tt.from, tt.to)
		if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test")); got != tt.want {
			t.Errorf("state after %s->%s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
		if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("test", tt.from, tt.to)); got < 1 {
			t.Errorf("transition %s->%s not counted", tt.from, tt.to)
		}
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad(3706, 1000209, 12000, time.Second)

	if got := testutil.ToFloat64(DatasetRecords.WithLabelValues("movies")); got != 3706 {
		t.Errorf("movies = %v, want 3706", got)
	}
	if got := testutil.ToFloat64(DatasetRecords.WithLabelValues("ratings")); got != 1000209 {
		t.Errorf("ratings = %v, want 1000209", got)
	}
	if got := testutil.ToFloat64(DatasetRecords.WithLabelValues("similarities")); got != 12000 {
		t.Errorf("similarities = %v, want 12000", got)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200")); got != before+1 {
		t.Errorf("api requests = %v, want %v", got, before+1)
	}
}

// TestTrackActiveRequest tests concurrent gauge updates
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}
