// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{"m1", 1, false},
		{"u42", 42, false},
		{" m3260 ", 3260, false},
		{"M7", 7, false},
		{"1", 0, true},
		{"m", 0, true},
		{"", 0, true},
		{"mx", 0, true},
		{"m-1", 0, true},
		{"m1.5", 0, true},
		{"11", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLabel(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestLoadRatingMatrix(t *testing.T) {
	src := `"",m1,m2,m3
u1,5,,3
u2,,4,NA
u3,4,2,
`
	m, err := LoadRatingMatrix(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadRatingMatrix() error = %v", err)
	}

	if m.NumRatings() != 5 {
		t.Errorf("NumRatings() = %d, want 5", m.NumRatings())
	}
	if got := m.Users(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Users() = %v, want [1 2 3]", got)
	}
	if got := m.Items(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Items() = %v, want [1 2 3]", got)
	}
	if r, ok := m.Rating(1, 1); !ok || r != 5 {
		t.Errorf("Rating(1, 1) = %v, %v, want 5, true", r, ok)
	}
	if _, ok := m.Rating(2, 1); ok {
		t.Error("Rating(2, 1) should be missing")
	}
	if _, ok := m.Rating(2, 3); ok {
		t.Error("Rating(2, 3) should be missing (NA cell)")
	}

	stats := m.ItemStats()
	want := []ItemStat{
		{ItemID: 1, Support: 2, Mean: 4.5},
		{ItemID: 2, Support: 2, Mean: 3},
		{ItemID: 3, Support: 1, Mean: 3},
	}
	if len(stats) != len(want) {
		t.Fatalf("ItemStats() returned %d stats, want %d", len(stats), len(want))
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("ItemStats()[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
}

func TestLoadRatingMatrix_UnratedColumn(t *testing.T) {
	m, err := LoadRatingMatrix(strings.NewReader("idx,m1,m9\nu1,4,\n"))
	if err != nil {
		t.Fatalf("LoadRatingMatrix() error = %v", err)
	}
	stats := m.ItemStats()
	if len(stats) != 2 {
		t.Fatalf("ItemStats() len = %d, want 2", len(stats))
	}
	if stats[1].ItemID != 9 || stats[1].Support != 0 || stats[1].Mean != 0 {
		t.Errorf("unrated column stat = %+v, want zero support", stats[1])
	}
}

func TestLoadMatrixErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty source", ""},
		{"header only index", "idx\n"},
		{"bad column label", "idx,1,m2\nu1,1,2\n"},
		{"duplicate column label", "idx,m1,m1\nu1,1,2\n"},
		{"bad row label", "idx,m1\nuser,3\n"},
		{"duplicate row label", "idx,m1\nu1,3\nu1,4\n"},
		{"ragged row", "idx,m1,m2\nu1,3\n"},
		{"non numeric cell", "idx,m1\nu1,good\n"},
		{"infinite cell", "idx,m1\nu1,Inf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRatingMatrix(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("LoadRatingMatrix() expected error, got nil")
			}
			if !IsLoadError(err) {
				t.Errorf("error %v is not a LoadError", err)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not wrap ErrMalformed", err)
			}

			_, err = LoadSimilarityMatrix(strings.NewReader(tt.src))
			if !IsLoadError(err) {
				t.Errorf("LoadSimilarityMatrix() error = %v, want LoadError", err)
			}
		})
	}
}

func TestLoadError_Format(t *testing.T) {
	err := NewLoadError("movies.dat", 0, errors.New("boom"))
	if err.Error() != "load movies.dat: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	err = malformed("ratings.csv", 3, "bad cell")
	if !strings.Contains(err.Error(), "record 3") {
		t.Errorf("Error() = %q, want record number", err.Error())
	}
}

func TestLoadSimilarityMatrix(t *testing.T) {
	src := `,m1,m2,m10
m1,,0.5,0.8
m2,0.5,1,0.2
m10,0.8,0.2,
`
	m, err := LoadSimilarityMatrix(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadSimilarityMatrix() error = %v", err)
	}

	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
	// diagonal "1" for m2 must be discarded
	if m.NumEntries() != 6 {
		t.Errorf("NumEntries() = %d, want 6", m.NumEntries())
	}

	col := m.Column(10)
	if len(col) != 2 {
		t.Fatalf("Column(10) = %v, want 2 neighbors", col)
	}
	if col[1] != 0.8 || col[2] != 0.2 {
		t.Errorf("Column(10) = %v, want {1:0.8 2:0.2}", col)
	}
	if _, ok := m.Similarity(2, 2); ok {
		t.Error("diagonal similarity must not be stored")
	}
	if m.Column(99) != nil {
		t.Error("Column(99) should be nil for unknown item")
	}
}

func TestSimilarityMatrix_ColumnAxis(t *testing.T) {
	// Row m1 holds similarity(1, j); the column for target 2 must read the
	// m1 row entry, not the m2 row.
	src := "x,m1,m2\nm1,,0.9\nm2,0.1,\n"
	m, err := LoadSimilarityMatrix(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadSimilarityMatrix() error = %v", err)
	}
	if s, _ := m.Similarity(1, 2); s != 0.9 {
		t.Errorf("Similarity(1, 2) = %v, want 0.9", s)
	}
	if s := m.Column(2)[1]; s != 0.9 {
		t.Errorf("Column(2)[1] = %v, want 0.9", s)
	}
	if s := m.Column(1)[2]; s != 0.1 {
		t.Errorf("Column(1)[2] = %v, want 0.1", s)
	}
}

func TestNewSimilarityMatrix_DropsDiagonal(t *testing.T) {
	m := NewSimilarityMatrix(map[int]map[int]float64{
		5: {5: 1, 6: 0.3},
	})
	if m.NumEntries() != 1 {
		t.Errorf("NumEntries() = %d, want 1", m.NumEntries())
	}
}

func TestNewRatingMatrix(t *testing.T) {
	m := NewRatingMatrix(map[int]map[int]float64{
		1: {10: 4, 20: 2},
		2: {10: 5},
	})
	stats := m.ItemStats()
	if len(stats) != 2 {
		t.Fatalf("ItemStats() len = %d, want 2", len(stats))
	}
	if stats[0].ItemID != 10 || stats[0].Support != 2 || math.Abs(stats[0].Mean-4.5) > 1e-12 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	ratings := filepath.Join(dir, "ratings.csv")
	sims := filepath.Join(dir, "sims.csv")
	if err := os.WriteFile(ratings, []byte("i,m1\nu1,3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sims, []byte("i,m1,m2\nm1,,0.4\nm2,0.4,\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRatingMatrixFile(ratings); err != nil {
		t.Errorf("LoadRatingMatrixFile() error = %v", err)
	}
	if _, err := LoadSimilarityMatrixFile(sims); err != nil {
		t.Errorf("LoadSimilarityMatrixFile() error = %v", err)
	}

	_, err := LoadRatingMatrixFile(filepath.Join(dir, "missing.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("missing file error = %v, want *LoadError", err)
	}
	if errors.Is(err, ErrMalformed) {
		t.Error("unreadable file should not be reported as malformed")
	}
}
