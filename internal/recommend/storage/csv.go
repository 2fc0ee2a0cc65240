// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// missingCells lists the cell spellings treated as "no value".
// pandas writes NaN as an empty field by default; the others appear when
// matrices are exported from R or by hand.
var missingCells = map[string]bool{
	"":     true,
	"na":   true,
	"nan":  true,
	"null": true,
}

// cellVisitor receives every non-missing cell of a wide matrix.
type cellVisitor func(rowID, colID int, value float64)

// matrixShape describes the labels of a wide matrix in file order.
type matrixShape struct {
	rowIDs []int
	colIDs []int
}

// readWideMatrix parses a CSV matrix whose header row holds column labels and
// whose first column holds row labels. Labels must be a single letter followed
// by digits ("m12", "u3"). Every row must have as many cells as the header.
func readWideMatrix(r io.Reader, source string, visit cellVisitor) (*matrixShape, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed(source, 1, "empty source")
	}
	if err != nil {
		return nil, csvError(source, err)
	}
	if len(header) < 2 {
		return nil, malformed(source, 1, "header has no column labels")
	}

	shape := &matrixShape{colIDs: make([]int, 0, len(header)-1)}
	seenCols := make(map[int]bool, len(header)-1)
	for _, label := range header[1:] {
		id, err := ParseLabel(label)
		if err != nil {
			return nil, malformed(source, 1, "column label %q: %v", label, err)
		}
		if seenCols[id] {
			return nil, malformed(source, 1, "duplicate column label %q", label)
		}
		seenCols[id] = true
		shape.colIDs = append(shape.colIDs, id)
	}

	seenRows := make(map[int]bool)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(source, err)
		}

		rowID, err := ParseLabel(record[0])
		if err != nil {
			return nil, malformed(source, line, "row label %q: %v", record[0], err)
		}
		if seenRows[rowID] {
			return nil, malformed(source, line, "duplicate row label %q", record[0])
		}
		seenRows[rowID] = true
		shape.rowIDs = append(shape.rowIDs, rowID)

		for i, cell := range record[1:] {
			value, ok, err := parseCell(cell)
			if err != nil {
				return nil, malformed(source, line, "column %d: %v", i+2, err)
			}
			if ok {
				visit(rowID, shape.colIDs[i], value)
			}
		}
	}

	return shape, nil
}

// csvError converts an encoding/csv error into a LoadError keeping the
// record position when the reader reports one.
func csvError(source string, err error) *LoadError {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return NewLoadError(source, pe.Line, errors.Join(ErrMalformed, pe.Err))
	}
	return NewLoadError(source, 0, err)
}

// ParseLabel strips the one-letter prefix from a matrix label and returns
// the integer id. "m1" and "u42" are valid; "1", "m", "mx" and "m-1" are not.
func ParseLabel(label string) (int, error) {
	label = strings.TrimSpace(label)
	if len(label) < 2 {
		return 0, errors.New("label too short")
	}
	prefix := label[0]
	if (prefix < 'a' || prefix > 'z') && (prefix < 'A' || prefix > 'Z') {
		return 0, errors.New("label must start with a letter")
	}
	digits := label[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, errors.New("label id must be digits")
		}
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// parseCell returns the numeric value of a cell and whether it was present.
func parseCell(cell string) (float64, bool, error) {
	cell = strings.TrimSpace(cell)
	if missingCells[strings.ToLower(cell)] {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false, errors.New("value is not finite")
	}
	return v, true, nil
}

// openSource opens a file for one of the loaders, mapping failures to LoadError.
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, NewLoadError(path, 0, err)
	}
	return f, nil
}
