// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared. It reports
// fields by their json tag, so error messages name the keys a client sent,
// and registers the notblank validator for free-text fields such as movie
// titles.
//
// # Quick Start
//
//	type RecommendRequest struct {
//	    Ratings map[string]int `json:"ratings" validate:"dive,keys,notblank,endkeys,min=0,max=5"`
//	    TopN    int            `json:"top_n" validate:"min=0,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Error Types
//
// ValidationError describes one failed field (Field, Tag, Param, Value).
// RequestValidationError collects them and converts to the API error shape
// with ToAPIError, always using the VALIDATION_ERROR code.
package validation
