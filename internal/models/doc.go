// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package models defines the JSON shapes exchanged over the HTTP API.
//
// Every endpoint answers with an APIResponse envelope. Successful calls carry
// their payload in Data; failures carry an APIError with one of the ErrCode
// constants. Request bodies carry validate tags consumed by the validation
// package.
package models
