// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every LoadError caused by bad source content
// (as opposed to an unreadable source).
var ErrMalformed = errors.New("malformed source data")

// LoadError reports that a data source could not be loaded at startup.
// It is the only error kind allowed to halt the service.
type LoadError struct {
	// Source names the file or logical source being loaded.
	Source string

	// Line is the 1-based record number the error refers to, or 0 when
	// the error concerns the whole source.
	Line int

	// Err is the underlying cause.
	Err error
}

// NewLoadError creates a LoadError for the given source and record.
func NewLoadError(source string, line int, err error) *LoadError {
	return &LoadError{Source: source, Line: line, Err: err}
}

// malformed builds a LoadError wrapping ErrMalformed with a formatted detail.
func malformed(source string, line int, format string, args ...any) *LoadError {
	return NewLoadError(source, line, fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...)))
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s (record %d): %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
