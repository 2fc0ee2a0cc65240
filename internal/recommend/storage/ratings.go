// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"io"
	"sort"
)

// RatingMatrix is a sparse user x item table of explicit ratings.
// It is read-only after loading and safe for concurrent use.
type RatingMatrix struct {
	users      []int
	items      []int
	byItem     map[int]map[int]float64 // item -> user -> rating
	numRatings int
}

// ItemStat summarizes the ratings one item received.
type ItemStat struct {
	// ItemID is the rated item.
	ItemID int `json:"item_id"`

	// Support is the number of users who rated the item.
	Support int `json:"support"`

	// Mean is the average rating, or 0 when Support is 0.
	Mean float64 `json:"mean"`
}

// LoadRatingMatrix parses a wide CSV rating matrix: one row per user
// (label "u<id>"), one column per item (label "m<id>"), empty cells unrated.
func LoadRatingMatrix(r io.Reader) (*RatingMatrix, error) {
	return loadRatingMatrix(r, "ratings")
}

// LoadRatingMatrixFile loads a rating matrix from a CSV file.
func LoadRatingMatrixFile(path string) (*RatingMatrix, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return loadRatingMatrix(f, path)
}

func loadRatingMatrix(r io.Reader, source string) (*RatingMatrix, error) {
	m := &RatingMatrix{byItem: make(map[int]map[int]float64)}

	shape, err := readWideMatrix(r, source, func(user, item int, rating float64) {
		col := m.byItem[item]
		if col == nil {
			col = make(map[int]float64)
			m.byItem[item] = col
		}
		col[user] = rating
		m.numRatings++
	})
	if err != nil {
		return nil, err
	}

	m.users = sortedCopy(shape.rowIDs)
	m.items = sortedCopy(shape.colIDs)
	return m, nil
}

// NewRatingMatrix builds a matrix from user -> item -> rating maps.
// Intended for tests and programmatic construction.
func NewRatingMatrix(ratings map[int]map[int]float64) *RatingMatrix {
	m := &RatingMatrix{byItem: make(map[int]map[int]float64)}
	itemSet := make(map[int]bool)
	for user, row := range ratings {
		m.users = append(m.users, user)
		for item, rating := range row {
			col := m.byItem[item]
			if col == nil {
				col = make(map[int]float64)
				m.byItem[item] = col
			}
			col[user] = rating
			itemSet[item] = true
			m.numRatings++
		}
	}
	for item := range itemSet {
		m.items = append(m.items, item)
	}
	sort.Ints(m.users)
	sort.Ints(m.items)
	return m
}

// Rating returns the rating a user gave an item.
func (m *RatingMatrix) Rating(user, item int) (float64, bool) {
	r, ok := m.byItem[item][user]
	return r, ok
}

// Users returns all user ids in ascending order.
func (m *RatingMatrix) Users() []int {
	return sortedCopy(m.users)
}

// Items returns all item ids (columns) in ascending order.
func (m *RatingMatrix) Items() []int {
	return sortedCopy(m.items)
}

// NumRatings returns the number of non-missing cells.
func (m *RatingMatrix) NumRatings() int {
	return m.numRatings
}

// ItemStats returns support and mean rating for every item column, ordered
// by item id. Items nobody rated are reported with zero support.
func (m *RatingMatrix) ItemStats() []ItemStat {
	stats := make([]ItemStat, 0, len(m.items))
	for _, item := range m.items {
		col := m.byItem[item]
		stat := ItemStat{ItemID: item, Support: len(col)}
		if stat.Support > 0 {
			// Sum in user order so the mean is bit-for-bit reproducible.
			users := make([]int, 0, len(col))
			for u := range col {
				users = append(users, u)
			}
			sort.Ints(users)
			var sum float64
			for _, u := range users {
				sum += col[u]
			}
			stat.Mean = sum / float64(stat.Support)
		}
		stats = append(stats, stat)
	}
	return stats
}

func sortedCopy(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	return out
}
