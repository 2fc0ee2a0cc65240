// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend orchestrates item-based movie recommendations.
//
// # Architecture
//
// A request is a set of title ratings on a 1-5 scale. The Engine:
//
//  1. Resolves titles against the catalog, dropping titles it cannot find
//  2. Builds a RatingVector keyed by item id
//  3. Asks the Scorer (item-based collaborative filtering) for predictions
//  4. Falls back to the Ranker (popularity) when the scorer reports no
//     signal or a fault, or when the scoring circuit breaker is open
//  5. Joins predictions with catalog metadata in ranking order
//
// The Scorer and Ranker implementations live in the algorithms subpackage.
// Matrix loading lives in the storage subpackage.
//
// # Data Context
//
// All data is loaded once by LoadDataset and never modified afterwards.
// The Dataset is passed explicitly to NewEngine; there is no global state.
//
// # Ordering
//
// Every list is ordered by score descending, then item id ascending. The
// same ratings and list length always produce the same list.
//
// # Usage
//
//	data, err := recommend.LoadDataset(ctx, paths, logger)
//	if err != nil {
//	    return err
//	}
//	engine, err := recommend.NewEngine(cfg, data,
//	    algorithms.NewItemCF(itemCFConfig, data.Similarities),
//	    algorithms.NewPopularity(popConfig, data.CataloguedItemStats()),
//	    logger,
//	    recommend.WithCache(store),
//	)
//
//	resp := engine.Recommend(ctx, map[string]int{"Toy Story (1995)": 5}, 10)
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Requests share the read-only
// Dataset; counters are atomic.
package recommend
