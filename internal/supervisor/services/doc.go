// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

HTTP Server (HTTPServerService):
  - Runs ListenAndServe in a goroutine
  - Shuts down gracefully with a bounded timeout on context cancellation

Stats Reporter (StatsReporterService):
  - Logs engine counters and per-interval deltas

Each service implements fmt.Stringer so suture log lines name it.
*/
package services
