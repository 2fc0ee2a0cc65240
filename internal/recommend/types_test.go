// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewRatingVector(t *testing.T) {
	v := NewRatingVector(map[int]float64{
		30: 4,
		10: 5,
		20: 0,
		40: -1,
	})

	if v.Len() != 2 {
		t.Errorf("Len() = %d, want 2", v.Len())
	}
	if got := v.IDs(); len(got) != 2 || got[0] != 10 || got[1] != 30 {
		t.Errorf("IDs() = %v, want [10 30]", got)
	}
	if v.Known(20) {
		t.Error("zero rating should be dropped")
	}
	if r, ok := v.Rating(30); !ok || r != 4 {
		t.Errorf("Rating(30) = %v, %v, want 4, true", r, ok)
	}

	var order []int
	v.Each(func(item int, _ float64) { order = append(order, item) })
	if len(order) != 2 || order[0] != 10 {
		t.Errorf("Each order = %v, want ascending", order)
	}

	ids := v.IDs()
	ids[0] = 999
	if v.IDs()[0] != 10 {
		t.Error("IDs() must return a copy")
	}
}

func TestSortPredictions(t *testing.T) {
	preds := []Prediction{
		{ItemID: 5, Score: 3},
		{ItemID: 2, Score: 4},
		{ItemID: 9, Score: 4},
		{ItemID: 1, Score: 3},
	}
	SortPredictions(preds)

	want := []int{2, 9, 1, 5}
	for i, id := range want {
		if preds[i].ItemID != id {
			t.Errorf("preds[%d].ItemID = %d, want %d", i, preds[i].ItemID, id)
		}
	}
}

func TestScoreResult(t *testing.T) {
	tests := []struct {
		name         string
		result       ScoreResult
		wantOutcome  Outcome
		wantFallback bool
	}{
		{"predictions", PredictionsResult([]Prediction{{ItemID: 1, Score: 4}}), OutcomePredictions, false},
		{"empty predictions", PredictionsResult(nil), OutcomeNoSignal, true},
		{"no signal", NoSignalResult(), OutcomeNoSignal, true},
		{"fault", FaultResult(errors.New("boom")), OutcomeFault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %v, want %v", tt.result.Outcome, tt.wantOutcome)
			}
			if tt.result.NeedsFallback() != tt.wantFallback {
				t.Errorf("NeedsFallback() = %v, want %v", tt.result.NeedsFallback(), tt.wantFallback)
			}
		})
	}

	if !errors.Is(NoSignalResult().Err, ErrNoPersonalizationSignal) {
		t.Error("NoSignalResult should carry ErrNoPersonalizationSignal")
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomePredictions: "predictions",
		OutcomeNoSignal:    "no_signal",
		OutcomeFault:       "fault",
		Outcome(42):        "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}

func TestScoringFault(t *testing.T) {
	fault := &ScoringFault{ItemID: 7, Err: context.Canceled}

	if got := fault.Error(); got != "scoring item 7: context canceled" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(fault, context.Canceled) {
		t.Error("ScoringFault should unwrap to its cause")
	}
	if !IsScoringFault(fmt.Errorf("wrapped: %w", fault)) {
		t.Error("IsScoringFault should see through wrapping")
	}
	if IsScoringFault(errors.New("plain")) {
		t.Error("IsScoringFault(plain error) = true")
	}

	noItem := &ScoringFault{Err: errors.New("panic")}
	if got := noItem.Error(); got != "scoring: panic" {
		t.Errorf("Error() = %q", got)
	}
}
