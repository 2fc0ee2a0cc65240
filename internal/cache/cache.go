// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Store is a byte-oriented response cache. Implementations must be safe for
// concurrent use. Get reports a miss rather than an error when the backend
// is unavailable: a cache outage only costs recomputation.
type Store interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Stats returns hit/miss counters.
	Stats() Stats
}

// Stats tracks cache performance.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
	Errors    int64 `json:"errors"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Backend selects a Store implementation.
type Backend string

const (
	// BackendMemory is the in-process LRU store (default).
	BackendMemory Backend = "memory"

	// BackendRedis shares cached responses between replicas through Redis.
	BackendRedis Backend = "redis"
)

// Config holds configuration for creating a Store.
type Config struct {
	// Backend selects the implementation.
	Backend Backend

	// MaxEntries bounds the memory backend.
	MaxEntries int

	// DefaultTTL is used when Set is called with a non-positive ttl.
	DefaultTTL time.Duration

	// Redis configures the redis backend.
	Redis RedisConfig
}

// New creates a Store for the configured backend.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewLRU(cfg.MaxEntries, cfg.DefaultTTL), nil
	case BackendRedis:
		return NewRedisStore(cfg.Redis, cfg.DefaultTTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GenerateKey creates a compact cache key from a namespace and parameters.
// Parameters are JSON encoded, so callers must pass values whose encoding is
// deterministic (structs and sorted slices rather than maps of structs).
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
