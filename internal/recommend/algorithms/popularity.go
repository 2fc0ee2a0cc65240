// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// Popularity ranks items by how many users rated them. It is the
// non-personalized fallback for users IBCF cannot score.
//
// An item is eligible when:
//
//	support(item) >= MinSupport  AND  mean(item) >= MinAverage
//
// Eligible items are ordered by support descending, then item id
// ascending. The score is the support count, so a highly rated but rarely
// seen movie never outranks a widely watched one.
type Popularity struct {
	config PopularityConfig

	// ranked is the full eligible ranking, computed once.
	ranked []recommend.Prediction
}

// PopularityConfig contains the eligibility thresholds.
type PopularityConfig struct {
	// MinSupport is the minimum number of ratings.
	MinSupport int

	// MinAverage is the minimum mean rating.
	MinAverage float64
}

// NewPopularity builds the ranking from per-item rating statistics.
func NewPopularity(cfg PopularityConfig, stats []storage.ItemStat) *Popularity {
	ranked := make([]recommend.Prediction, 0, len(stats))
	for _, s := range stats {
		if s.Support < cfg.MinSupport || s.Mean < cfg.MinAverage {
			continue
		}
		// unrated items have no mean to compare
		if s.Support == 0 {
			continue
		}
		ranked = append(ranked, recommend.Prediction{ItemID: s.ItemID, Score: float64(s.Support)})
	}
	recommend.SortPredictions(ranked)

	return &Popularity{
		config: cfg,
		ranked: ranked,
	}
}

// Name returns the algorithm identifier.
func (p *Popularity) Name() string {
	return "popularity"
}

// Rank returns at most topN items in ranking order. It returns fewer when
// fewer items are eligible and nothing for topN <= 0.
func (p *Popularity) Rank(topN int) []recommend.Prediction {
	if topN <= 0 {
		return nil
	}
	n := min(topN, len(p.ranked))
	out := make([]recommend.Prediction, n)
	copy(out, p.ranked[:n])
	return out
}

// Eligible returns the number of items that passed the thresholds.
func (p *Popularity) Eligible() int {
	return len(p.ranked)
}
