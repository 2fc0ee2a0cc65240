// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// DataPaths locates the three precomputed sources on disk.
type DataPaths struct {
	// Movies is the movies.dat catalog file.
	Movies string

	// Ratings is the wide user x item rating matrix CSV.
	Ratings string

	// Similarity is the wide item x item similarity matrix CSV.
	Similarity string
}

// Dataset is the immutable data context shared by every request. It is
// built once before serving and passed explicitly to the engine.
type Dataset struct {
	Catalog      *catalog.Catalog
	Ratings      *storage.RatingMatrix
	Similarities *storage.SimilarityMatrix

	// LoadedAt records when loading finished.
	LoadedAt time.Time
}

// DatasetSummary reports the size of a loaded dataset.
type DatasetSummary struct {
	Movies              int       `json:"movies"`
	SkippedRecords      int       `json:"skipped_records"`
	Users               int       `json:"users"`
	Ratings             int       `json:"ratings"`
	SimilarityItems     int       `json:"similarity_items"`
	SimilarityEntries   int       `json:"similarity_entries"`
	UncataloguedTargets int       `json:"uncatalogued_targets"`
	LoadedAt            time.Time `json:"loaded_at"`
}

// ErrIncompleteDataset is returned when a Dataset is missing a component.
var ErrIncompleteDataset = errors.New("dataset is missing a source")

// LoadDataset reads the catalog and both matrices concurrently. Any failure
// is returned as a *storage.LoadError; the first failure cancels the rest.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadDataset(ctx context.Context, paths DataPaths, logger zerolog.Logger) (*Dataset, error) {
	start := time.Now()
	ds := &Dataset{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := catalog.LoadFile(paths.Movies)
		if err != nil {
			return err
		}
		ds.Catalog = c
		return gctx.Err()
	})
	g.Go(func() error {
		m, err := storage.LoadRatingMatrixFile(paths.Ratings)
		if err != nil {
			return err
		}
		ds.Ratings = m
		return gctx.Err()
	})
	g.Go(func() error {
		m, err := storage.LoadSimilarityMatrixFile(paths.Similarity)
		if err != nil {
			return err
		}
		ds.Similarities = m
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		if !storage.IsLoadError(err) {
			err = storage.NewLoadError("dataset", 0, err)
		}
		return nil, err
	}
	ds.LoadedAt = time.Now()

	summary := ds.Summary()
	metrics.RecordDatasetLoad(summary.Movies, summary.Ratings, summary.SimilarityEntries, time.Since(start))
	event := logger.Info()
	if summary.UncataloguedTargets > 0 {
		event = logger.Warn()
	}
	event.
		Int("movies", summary.Movies).
		Int("skipped_records", summary.SkippedRecords).
		Int("users", summary.Users).
		Int("ratings", summary.Ratings).
		Int("similarity_items", summary.SimilarityItems).
		Int("similarity_entries", summary.SimilarityEntries).
		Int("uncatalogued_targets", summary.UncataloguedTargets).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded")

	return ds, nil
}

// Validate checks that every component is present.
func (d *Dataset) Validate() error {
	if d == nil || d.Catalog == nil || d.Ratings == nil || d.Similarities == nil {
		return ErrIncompleteDataset
	}
	return nil
}

// Summary reports dataset sizes. Similarity targets without a catalog entry
// are counted because their predictions can never be shown.
func (d *Dataset) Summary() DatasetSummary {
	s := DatasetSummary{LoadedAt: d.LoadedAt}
	if d.Catalog != nil {
		s.Movies = d.Catalog.Len()
		s.SkippedRecords = d.Catalog.Skipped()
	}
	if d.Ratings != nil {
		s.Users = len(d.Ratings.Users())
		s.Ratings = d.Ratings.NumRatings()
	}
	if d.Similarities != nil {
		s.SimilarityItems = d.Similarities.Len()
		s.SimilarityEntries = d.Similarities.NumEntries()
		if d.Catalog != nil {
			for _, id := range d.Similarities.Items() {
				if _, ok := d.Catalog.Get(id); !ok {
					s.UncataloguedTargets++
				}
			}
		}
	}
	return s
}

// CataloguedItemStats returns the rating statistics of items that have a
// catalog entry, ordered by item id. Rankers built from it never propose an
// item the engine cannot show.
func (d *Dataset) CataloguedItemStats() []storage.ItemStat {
	all := d.Ratings.ItemStats()
	stats := make([]storage.ItemStat, 0, len(all))
	for _, st := range all {
		if _, ok := d.Catalog.Get(st.ItemID); ok {
			stats = append(stats, st)
		}
	}
	return stats
}
