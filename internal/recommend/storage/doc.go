// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package storage loads the precomputed matrices the recommender reads.
//
// Two sources are supported, both wide CSV files exported from a data frame:
//
//   - RatingMatrix: rows are users ("u<id>"), columns are items ("m<id>"),
//     cells are explicit ratings. Used only to derive popularity.
//   - SimilarityMatrix: rows and columns are items, cells are similarity
//     scores. Stored column-indexed so the similarities towards one target
//     item are an O(1) lookup.
//
// # Source Format
//
//	"",m1,m2,m3
//	u1,5,,3
//	u2,,4,
//
// The first header cell is the index name and is ignored. Empty, NA and NaN
// cells are missing values.
//
// # Errors
//
// Every failure is reported as a *LoadError. Labels that do not reduce to an
// integer id, duplicate labels, ragged rows and non-numeric cells are all
// treated as malformed sources: item ids are plain ints everywhere in the
// service and a matrix that cannot be keyed that way is rejected up front.
//
// # Thread Safety
//
// Matrices are immutable once loaded and may be shared by any number of
// goroutines without locking.
package storage
