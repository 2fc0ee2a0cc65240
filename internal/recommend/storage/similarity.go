// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"io"
	"sort"
)

// SimilarityMatrix holds precomputed item-item similarities indexed by the
// target item (matrix column). Column(i) yields similarity(j, i) for every
// neighbor j with a stored value. Diagonal cells are discarded at load time.
//
// The matrix is read-only after loading and safe for concurrent use.
type SimilarityMatrix struct {
	items   []int
	columns map[int]map[int]float64 // target item -> neighbor -> similarity
	entries int
}

// LoadSimilarityMatrix parses a wide CSV similarity matrix. Rows and columns
// are item labels ("m<id>"); empty cells mean the similarity was not computed.
func LoadSimilarityMatrix(r io.Reader) (*SimilarityMatrix, error) {
	return loadSimilarityMatrix(r, "similarity")
}

// LoadSimilarityMatrixFile loads a similarity matrix from a CSV file.
func LoadSimilarityMatrixFile(path string) (*SimilarityMatrix, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return loadSimilarityMatrix(f, path)
}

func loadSimilarityMatrix(r io.Reader, source string) (*SimilarityMatrix, error) {
	m := &SimilarityMatrix{columns: make(map[int]map[int]float64)}

	shape, err := readWideMatrix(r, source, func(neighbor, target int, sim float64) {
		if neighbor == target {
			return
		}
		m.set(neighbor, target, sim)
	})
	if err != nil {
		return nil, err
	}

	m.items = sortedCopy(shape.colIDs)
	return m, nil
}

// NewSimilarityMatrix builds a matrix from target -> neighbor -> similarity
// maps. Self-similarities are dropped. Intended for tests and programmatic use.
func NewSimilarityMatrix(columns map[int]map[int]float64) *SimilarityMatrix {
	m := &SimilarityMatrix{columns: make(map[int]map[int]float64, len(columns))}
	for target, col := range columns {
		m.items = append(m.items, target)
		for neighbor, sim := range col {
			if neighbor != target {
				m.set(neighbor, target, sim)
			}
		}
	}
	sort.Ints(m.items)
	return m
}

func (m *SimilarityMatrix) set(neighbor, target int, sim float64) {
	col := m.columns[target]
	if col == nil {
		col = make(map[int]float64)
		m.columns[target] = col
	}
	col[neighbor] = sim
	m.entries++
}

// Column returns similarity(j, target) for every neighbor j with a stored
// value. The map is shared and must not be modified. A nil map is returned
// for unknown targets.
func (m *SimilarityMatrix) Column(target int) map[int]float64 {
	return m.columns[target]
}

// Similarity returns similarity(neighbor, target).
func (m *SimilarityMatrix) Similarity(neighbor, target int) (float64, bool) {
	s, ok := m.columns[target][neighbor]
	return s, ok
}

// Items returns the target item ids in ascending order.
func (m *SimilarityMatrix) Items() []int {
	return sortedCopy(m.items)
}

// Len returns the number of target items.
func (m *SimilarityMatrix) Len() int {
	return len(m.items)
}

// NumEntries returns the number of stored off-diagonal similarities.
func (m *SimilarityMatrix) NumEntries() int {
	return m.entries
}
