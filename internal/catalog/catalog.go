// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/marquee/internal/recommend/storage"
)

const (
	// fieldDelimiter separates id, title and genres in a catalog record.
	fieldDelimiter = "::"

	// genreDelimiter separates genre tags inside the genres field.
	genreDelimiter = "|"

	// maxLineBytes bounds a single catalog record. Longer records are
	// skipped like any other malformed record.
	maxLineBytes = 64 * 1024
)

// ErrEmptyCatalog is returned when a source yields no usable records.
var ErrEmptyCatalog = errors.New("catalog contains no records")

// Item is one movie in the catalog.
type Item struct {
	// ID is the movie identifier shared with the rating and similarity matrices.
	ID int `json:"id"`

	// Title is the display title, including the release year in MovieLens data.
	Title string `json:"title"`

	// Genres holds the distinct genre tags in source order.
	Genres []string `json:"genres"`
}

// Catalog is a read-only id -> item mapping with a title index.
// It is safe for concurrent use once constructed.
type Catalog struct {
	items   []Item // ordered by id
	byID    map[int]int
	byTitle map[string]int
	skipped int
}

// Load reads a MovieLens style catalog ("id::title::genre|genre") encoded as
// ISO-8859-1. Records with fewer than three fields, a non-integer id or more
// than 64 KiB are skipped; a duplicate id or an empty result is a LoadError.
func Load(r io.Reader) (*Catalog, error) {
	return load(r, "catalog")
}

// LoadFile loads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, storage.NewLoadError(path, 0, err)
	}
	defer func() { _ = f.Close() }()
	return load(f, path)
}

func load(r io.Reader, source string) (*Catalog, error) {
	br := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))

	var (
		items   []Item
		seen    = make(map[int]int)
		skipped int
		line    int
	)
	for {
		raw, oversized, err := readRecord(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, storage.NewLoadError(source, line+1, err)
		}
		line++
		if oversized {
			skipped++
			continue
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		item, ok := parseRecord(text)
		if !ok {
			skipped++
			continue
		}
		if first, dup := seen[item.ID]; dup {
			return nil, storage.NewLoadError(source, line,
				fmt.Errorf("%w: duplicate id %d (first seen on record %d)", storage.ErrMalformed, item.ID, first))
		}
		seen[item.ID] = line
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, storage.NewLoadError(source, 0, ErrEmptyCatalog)
	}

	c := build(items)
	c.skipped = skipped
	return c, nil
}

// readRecord returns the next line without its terminator. A line longer
// than maxLineBytes is consumed and reported as oversized without being
// kept in memory. io.EOF is returned only when no line remains.
func readRecord(br *bufio.Reader) (string, bool, error) {
	var (
		buf       []byte
		oversized bool
		started   bool
	)
	for {
		frag, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return string(buf), oversized, nil
			}
			return "", false, err
		}
		started = true
		if !oversized {
			if len(buf)+len(frag) > maxLineBytes {
				oversized = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

// parseRecord splits one catalog line. Fields past the third are ignored.
func parseRecord(text string) (Item, bool) {
	parts := strings.Split(text, fieldDelimiter)
	if len(parts) < 3 {
		return Item{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Item{}, false
	}
	return Item{
		ID:     id,
		Title:  strings.TrimSpace(parts[1]),
		Genres: splitGenres(parts[2]),
	}, true
}

func splitGenres(field string) []string {
	raw := strings.Split(field, genreDelimiter)
	genres := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, g := range raw {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		genres = append(genres, g)
	}
	return genres
}

// New builds a catalog from items. Item ids must be unique.
func New(items []Item) (*Catalog, error) {
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate item id %d", it.ID)
		}
		seen[it.ID] = true
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return build(cp), nil
}

func build(items []Item) *Catalog {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	c := &Catalog{
		items:   items,
		byID:    make(map[int]int, len(items)),
		byTitle: make(map[string]int, len(items)),
	}
	for idx, it := range items {
		c.byID[it.ID] = idx
		// items are id-ordered, so the first writer is the lowest id
		if _, exists := c.byTitle[it.Title]; !exists {
			c.byTitle[it.Title] = idx
		}
	}
	return c
}

// Resolve looks an item up by exact title. Leading and trailing whitespace
// in the query is ignored. When several items share a title the one with
// the lowest id wins.
func (c *Catalog) Resolve(title string) (Item, bool) {
	idx, ok := c.byTitle[strings.TrimSpace(title)]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// Get looks an item up by id.
func (c *Catalog) Get(id int) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// Items returns every item ordered by id.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns every item id in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Skipped returns how many malformed records were dropped while loading.
func (c *Catalog) Skipped() int {
	return c.skipped
}

// Genres returns the distinct genre tags across the catalog, sorted.
func (c *Catalog) Genres() []string {
	set := make(map[string]bool)
	for _, it := range c.items {
		for _, g := range it.Genres {
			set[g] = true
		}
	}
	genres := make([]string, 0, len(set))
	for g := range set {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
