// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog provides the read-only movie catalog.
//
// The catalog is loaded once from a MovieLens movies.dat file:
//
//	1::Toy Story (1995)::Animation|Children's|Comedy
//	2::Jumanji (1995)::Adventure|Children's|Fantasy
//
// Files are decoded as ISO-8859-1, which is how MovieLens ships them.
// Records with fewer than three fields are skipped rather than failing the
// load. Lookups by id and by exact title are O(1).
package catalog
