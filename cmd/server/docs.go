// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main provides the Marquee HTTP server
//
// @title Marquee API
// @version 1.0
// @description Item-based collaborative filtering movie recommendations with a popularity fallback.
// @description
// @description ## Recommendations
// @description
// @description Submit ratings keyed by exact movie title. Unknown titles are reported back in
// @description `unresolved` and otherwise ignored. When no rated movie has similarity
// @description neighbours, the response carries `source: "popularity"`.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message"
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Personalized and popularity-based movie recommendations
//
// @tag.name Movies
// @tag.description Catalog browsing by id and genre
//
// @tag.name Health
// @tag.description Liveness and readiness probes
//
// @tag.name Core
// @tag.description Engine and dataset statistics
package main
