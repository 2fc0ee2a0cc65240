// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package cache provides the response cache used by the recommendation engine.
//
// Two backends implement Store:
//
//   - LRU: bounded in-process cache with per-entry TTL. Its Serve method runs
//     a janitor that sweeps expired entries and is registered with the
//     supervisor tree.
//   - RedisStore: shares cached responses between replicas.
//
// Values are opaque byte slices; callers encode with goccy/go-json. Keys are
// built with GenerateKey, which hashes JSON encoded parameters.
//
// A cache failure never fails a request. Backend errors surface as misses and
// are counted in Stats.
package cache
