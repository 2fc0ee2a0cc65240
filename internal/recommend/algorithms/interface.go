// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"math"

	"github.com/tomtom215/marquee/internal/recommend"
)

// defaultTopN is the list length used when a caller passes topN <= 0.
const defaultTopN = 10

// contextCheckInterval is how many candidates are scored between
// cancellation checks.
const contextCheckInterval = 256

// SimilarityProvider exposes similarity columns indexed by target item.
// Column returns similarity(j, target) for every known neighbor j, excluding
// the target itself. The returned map must not be modified.
type SimilarityProvider interface {
	Column(target int) map[int]float64
}

// Compile-time interface checks.
var (
	_ recommend.Scorer = (*ItemCF)(nil)
	_ recommend.Ranker = (*Popularity)(nil)
)

// truncate sorts predictions into ranking order and keeps the first topN.
func truncate(preds []recommend.Prediction, topN int) []recommend.Prediction {
	recommend.SortPredictions(preds)
	if len(preds) > topN {
		preds = preds[:topN]
	}
	return preds
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkContext returns ctx.Err() without blocking.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
