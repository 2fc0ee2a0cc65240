// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrResolutionMiss marks a requested title that is not in the catalog.
	// The title is dropped from the rating vector; the request continues.
	ErrResolutionMiss = errors.New("title not found in catalog")

	// ErrNoPersonalizationSignal is carried by OutcomeNoSignal results.
	ErrNoPersonalizationSignal = errors.New("no personalized predictions available")

	// ErrCircuitOpen is reported when scoring was skipped by the breaker.
	ErrCircuitOpen = errors.New("scoring circuit open")
)

// ScoringFault reports unexpected data or interruption while computing
// similarity-weighted scores. It never leaves the orchestrator.
type ScoringFault struct {
	// ItemID is the candidate being scored when the fault occurred, or 0.
	ItemID int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (f *ScoringFault) Error() string {
	if f.ItemID != 0 {
		return fmt.Sprintf("scoring item %d: %v", f.ItemID, f.Err)
	}
	return fmt.Sprintf("scoring: %v", f.Err)
}

// Unwrap returns the underlying cause.
func (f *ScoringFault) Unwrap() error {
	return f.Err
}

// IsScoringFault reports whether err is or wraps a ScoringFault.
func IsScoringFault(err error) bool {
	var sf *ScoringFault
	return errors.As(err, &sf)
}
