// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("addr", addr).Msg("server starting")
//	logging.Error().Err(err).Msg("request failed")
//
// Components receive a zerolog.Logger by value and derive their own
// child logger:
//
//	logger := logging.WithComponent("recommend")
//	logger.Debug().Int("top_n", n).Msg("scoring")
//
// # Request Context
//
// The API middleware stores the request ID in the request context.
// Ctx(ctx) returns a logger with the ID attached, and the recommendation
// engine copies it into response metadata:
//
//	ctx = logging.ContextWithRequestID(ctx, id)
//	logging.Ctx(ctx).Info().Msg("handled")
//
// # slog Bridge
//
// NewSlogLogger adapts the global logger to log/slog for libraries that
// require it, such as the sutureslog event hook used by the supervisor.
//
// # Configuration
//
// Level, format, caller and timestamp come from the logging section of the
// application config (LOG_LEVEL, LOG_FORMAT, LOG_CALLER).
package logging
