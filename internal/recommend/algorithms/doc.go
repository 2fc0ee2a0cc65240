// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package algorithms implements the scorers and rankers used by the
// recommendation engine.
//
// # Algorithms
//
// ItemCF (recommend.Scorer) predicts a rating for every unrated candidate as
// the similarity-weighted average of the user's ratings on its neighbors:
//
//	score(i) = Σ s(j,i) * r(j) / Σ s(j,i)    over rated j with known s(j,i)
//
// Candidates with no rated neighbor, or whose similarity weights sum to zero
// or less, get no prediction. Similarities are read from the target item's
// column of the precomputed similarity matrix.
//
// Popularity (recommend.Ranker) ranks items by rating count among items
// with enough ratings and a high enough mean. The ranking does not depend on
// the user and is computed once at construction.
//
// # Ordering
//
// Both algorithms order by score descending, then item id ascending.
//
// # Thread Safety
//
// Both types are immutable after construction and safe for concurrent use.
package algorithms
