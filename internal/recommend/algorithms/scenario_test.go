// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// Fixture ids.
const (
	toyStory = 1
	jumanji  = 2
	lowCount = 15 // support 49, mean 4.8
	lowMean  = 16 // support 200, mean 3.0
)

// newScenarioDataset builds a small catalog where items 3..14 are popular
// (support 105 down to 50), the two titles users rate are not, and item 10
// has a similarity column over items 1 and 2.
func newScenarioDataset(t *testing.T, withOverlap bool) *recommend.Dataset {
	t.Helper()

	items := []catalog.Item{
		{ID: toyStory, Title: "Toy Story (1995)", Genres: []string{"Animation", "Children's", "Comedy"}},
		{ID: jumanji, Title: "Jumanji (1995)", Genres: []string{"Adventure", "Children's", "Fantasy"}},
	}
	for id := 3; id <= 16; id++ {
		items = append(items, catalog.Item{ID: id, Title: fmt.Sprintf("Movie %d (2000)", id), Genres: []string{"Drama"}})
	}
	cat, err := catalog.New(items)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	ratings := make(map[int]map[int]float64)
	rate := func(user, item int, r float64) {
		if ratings[user] == nil {
			ratings[user] = make(map[int]float64)
		}
		ratings[user][item] = r
	}
	for id := 3; id <= 14; id++ {
		support := 50 + (14-id)*5
		for u := 1; u <= support; u++ {
			rate(u, id, 4)
		}
	}
	for u := 1; u <= 49; u++ {
		rate(u, lowCount, 4.8)
	}
	for u := 1; u <= 200; u++ {
		rate(u, lowMean, 3)
	}
	for u := 1; u <= 10; u++ {
		rate(u, toyStory, 5)
		rate(u, jumanji, 4)
	}

	columns := map[int]map[int]float64{
		// neighbors nobody in the scenarios rates
		3: {4: 0.6, 5: 0.4},
		4: {3: 0.6},
	}
	if withOverlap {
		columns[10] = map[int]float64{toyStory: 0.8, jumanji: 0.2}
	}

	return &recommend.Dataset{
		Catalog:      cat,
		Ratings:      storage.NewRatingMatrix(ratings),
		Similarities: storage.NewSimilarityMatrix(columns),
		LoadedAt:     time.Now(),
	}
}

func newScenarioEngine(t *testing.T, data *recommend.Dataset) *recommend.Engine {
	t.Helper()
	cfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(cfg, data,
		NewItemCF(ItemCFConfig{StrictSimilarityRange: cfg.Scoring.StrictSimilarityRange}, data.Similarities),
		NewPopularity(PopularityConfig{
			MinSupport: cfg.Popularity.MinSupport,
			MinAverage: cfg.Popularity.MinAverage,
		}, data.Ratings.ItemStats()),
		zerolog.Nop(),
	)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func ids(items []recommend.ScoredItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestScenario_NoOverlapFallsBackToPopularity(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, false))

	resp := engine.Recommend(context.Background(), map[string]int{
		"Toy Story (1995)": 5,
		"Jumanji (1995)":   4,
	}, 10)

	if resp.Source != recommend.SourcePopularity || resp.FallbackReason != recommend.ReasonNoSignal {
		t.Fatalf("Source, Reason = %q, %q, want popularity, no_signal", resp.Source, resp.FallbackReason)
	}
	want := []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	got := ids(resp.Items)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	if resp.Items[0].Score != 105 {
		t.Errorf("top score = %v, want support 105", resp.Items[0].Score)
	}
}

func TestScenario_WeightedAveragePrediction(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, true))

	resp := engine.Recommend(context.Background(), map[string]int{
		"Toy Story (1995)": 4,
		"Jumanji (1995)":   2,
	}, 10)

	if resp.Source != recommend.SourceIBCF {
		t.Fatalf("Source = %q, want ibcf", resp.Source)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != 10 {
		t.Fatalf("items = %v, want [10]", ids(resp.Items))
	}
	if math.Abs(resp.Items[0].Score-3.6) > 1e-9 {
		t.Errorf("score = %v, want 3.6", resp.Items[0].Score)
	}
	if resp.Items[0].Title != "Movie 10 (2000)" {
		t.Errorf("title = %q, want catalog title", resp.Items[0].Title)
	}
}

func TestScenario_UnknownTitleDropped(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, true))

	resp := engine.Recommend(context.Background(), map[string]int{
		"Toy Story (1995)":   4,
		"Jumanji (1995)":     2,
		"Toy Storey (1995)":  5,
		"Not A Movie (2099)": 3,
	}, 10)

	if resp.Source != recommend.SourceIBCF || len(resp.Items) != 1 {
		t.Fatalf("Source = %q, items = %v, want ibcf [10]", resp.Source, ids(resp.Items))
	}
	if resp.Resolved != 2 || len(resp.Unresolved) != 2 {
		t.Errorf("Resolved, Unresolved = %d, %v, want 2 and two titles", resp.Resolved, resp.Unresolved)
	}
}

func TestScenario_PopularityThresholds(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, false))

	resp := engine.Popular(context.Background(), 100)
	for _, it := range resp.Items {
		if it.ID == lowCount {
			t.Error("item with support 49 must not be ranked")
		}
		if it.ID == lowMean {
			t.Error("item with mean 3.0 must not be ranked")
		}
	}
	if len(resp.Items) != 12 {
		t.Errorf("len(items) = %d, want 12 (never padded)", len(resp.Items))
	}
}

func TestScenario_EmptyVectorEqualsPopularity(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, true))

	for _, ratings := range []map[string]int{
		nil,
		{},
		{"Toy Story (1995)": 0},
		{"Unknown (1900)": 5},
	} {
		resp := engine.Recommend(context.Background(), ratings, 10)
		popular := engine.Popular(context.Background(), 10)

		if fmt.Sprint(ids(resp.Items)) != fmt.Sprint(ids(popular.Items)) {
			t.Errorf("Recommend(%v) = %v, want popularity %v", ratings, ids(resp.Items), ids(popular.Items))
		}
	}
}

func TestScenario_ResultsExcludeRatedItems(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, false))

	// Items 3 and 4 are the two most popular; rating them must push them
	// out of the fallback list.
	resp := engine.Recommend(context.Background(), map[string]int{
		"Movie 3 (2000)": 5,
		"Movie 4 (2000)": 5,
	}, 10)

	for _, it := range resp.Items {
		if it.ID == 3 || it.ID == 4 {
			t.Errorf("rated item %d returned", it.ID)
		}
	}
	if len(resp.Items) != 10 {
		t.Errorf("len(items) = %d, want 10", len(resp.Items))
	}
}

func TestScenario_Idempotent(t *testing.T) {
	engine := newScenarioEngine(t, newScenarioDataset(t, true))
	ratings := map[string]int{"Toy Story (1995)": 4, "Jumanji (1995)": 2, "Movie 3 (2000)": 3}

	first := engine.Recommend(context.Background(), ratings, 10)
	second := engine.Recommend(context.Background(), ratings, 10)

	if len(first.Items) != len(second.Items) {
		t.Fatalf("lengths differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID || first.Items[i].Score != second.Items[i].Score {
			t.Errorf("item %d differs: %+v vs %+v", i, first.Items[i], second.Items[i])
		}
	}
}

func TestScenario_PopularityFillsPastUncataloguedItem(t *testing.T) {
	cat, err := catalog.New([]catalog.Item{
		{ID: 1, Title: "Movie 1 (2000)"},
		{ID: 2, Title: "Movie 2 (2000)"},
		{ID: 3, Title: "Movie 3 (2000)"},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	// support: item 1 = 12, item 99 = 11 (uncatalogued), item 2 = 10, item 3 = 9
	ratings := make(map[int]map[int]float64)
	for item, support := range map[int]int{1: 12, 99: 11, 2: 10, 3: 9} {
		for u := 1; u <= support; u++ {
			if ratings[u] == nil {
				ratings[u] = make(map[int]float64)
			}
			ratings[u][item] = 4
		}
	}
	data := &recommend.Dataset{
		Catalog:      cat,
		Ratings:      storage.NewRatingMatrix(ratings),
		Similarities: storage.NewSimilarityMatrix(map[int]map[int]float64{1: {2: 0.5}}),
		LoadedAt:     time.Now(),
	}
	popCfg := PopularityConfig{MinSupport: 1, MinAverage: 0}

	tests := []struct {
		name  string
		stats []storage.ItemStat
	}{
		{"all rated items", data.Ratings.ItemStats()},
		{"catalogued items", data.CataloguedItemStats()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := recommend.NewEngine(recommend.DefaultConfig(), data,
				NewItemCF(ItemCFConfig{}, data.Similarities),
				NewPopularity(popCfg, tt.stats),
				zerolog.Nop(),
			)
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}

			want := "[1 2 3]"
			if got := fmt.Sprint(ids(engine.Recommend(context.Background(), nil, 3).Items)); got != want {
				t.Errorf("Recommend() ids = %s, want %s", got, want)
			}
			if got := fmt.Sprint(ids(engine.Popular(context.Background(), 3).Items)); got != want {
				t.Errorf("Popular() ids = %s, want %s", got, want)
			}
		})
	}

	if got := NewPopularity(popCfg, data.CataloguedItemStats()).Eligible(); got != 3 {
		t.Errorf("Eligible() over catalogued stats = %d, want 3", got)
	}
}
