// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/recommend"
)

var (
	// ErrNonFiniteSimilarity marks a NaN or infinite similarity value.
	ErrNonFiniteSimilarity = errors.New("non-finite similarity")

	// ErrSimilarityOutOfRange marks a similarity outside [-1, 1].
	ErrSimilarityOutOfRange = errors.New("similarity outside [-1, 1]")

	// ErrNonFiniteScore marks a weighted average that overflowed.
	ErrNonFiniteScore = errors.New("non-finite score")
)

// ItemCF implements item-based collaborative filtering over a precomputed
// similarity matrix.
//
// For a candidate item i the user has not rated:
//
//	neighbors = { j : s(j,i) known and r(j) known }
//	score(i)  = Σ s(j,i) * r(j) / Σ s(j,i)
//
// Empty neighbor sets and non-positive denominators produce no prediction.
// Negative similarities are allowed and pull the score away from the
// neighbor's rating.
type ItemCF struct {
	config ItemCFConfig
	sims   SimilarityProvider
}

// ItemCFConfig contains configuration for item-based CF scoring.
type ItemCFConfig struct {
	// StrictSimilarityRange reports similarities outside [-1, 1] as a
	// scoring fault. When false they are used as-is.
	StrictSimilarityRange bool
}

// NewItemCF creates an item-based CF scorer reading from sims.
func NewItemCF(cfg ItemCFConfig, sims SimilarityProvider) *ItemCF {
	return &ItemCF{
		config: cfg,
		sims:   sims,
	}
}

// Name returns the algorithm identifier.
func (c *ItemCF) Name() string {
	return "ibcf"
}

// Predict scores every candidate the user has not rated. It returns a
// NoSignal result for an empty vector or when no candidate could be scored,
// and a Fault result on bad similarity data or cancellation.
func (c *ItemCF) Predict(ctx context.Context, vector recommend.RatingVector, candidates []int, topN int) recommend.ScoreResult {
	if topN <= 0 {
		topN = defaultTopN
	}
	if vector.Len() == 0 {
		return recommend.NoSignalResult()
	}

	rated := vector.IDs()
	preds := make([]recommend.Prediction, 0, min(len(candidates), 4*topN))

	for n, item := range candidates {
		if n%contextCheckInterval == 0 {
			if err := checkContext(ctx); err != nil {
				return recommend.FaultResult(&recommend.ScoringFault{Err: err})
			}
		}
		if vector.Known(item) {
			continue
		}

		score, ok, err := c.score(item, rated, vector)
		if err != nil {
			return recommend.FaultResult(&recommend.ScoringFault{ItemID: item, Err: err})
		}
		if ok {
			preds = append(preds, recommend.Prediction{ItemID: item, Score: score})
		}
	}

	return recommend.PredictionsResult(truncate(preds, topN))
}

// score computes the weighted average for one candidate. rated must be in
// ascending order so the floating point sums are reproducible.
func (c *ItemCF) score(item int, rated []int, vector recommend.RatingVector) (float64, bool, error) {
	column := c.sims.Column(item)
	if len(column) == 0 {
		return 0, false, nil
	}

	var num, den float64
	var neighbors int
	for _, j := range rated {
		sim, ok := column[j]
		if !ok {
			continue
		}
		if err := c.checkSimilarity(sim); err != nil {
			return 0, false, fmt.Errorf("neighbor %d: %w", j, err)
		}
		r, _ := vector.Rating(j)
		num += sim * r
		den += sim
		neighbors++
	}

	if neighbors == 0 || den <= 0 {
		return 0, false, nil
	}

	score := num / den
	if !isFinite(score) {
		return 0, false, ErrNonFiniteScore
	}
	return score, true, nil
}

func (c *ItemCF) checkSimilarity(sim float64) error {
	if !isFinite(sim) {
		return ErrNonFiniteSimilarity
	}
	if c.config.StrictSimilarityRange && (sim < -1 || sim > 1) {
		return fmt.Errorf("%w: %v", ErrSimilarityOutOfRange, sim)
	}
	return nil
}
