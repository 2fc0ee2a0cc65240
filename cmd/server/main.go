// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggerConfig())
	logging.Info().
		Str("version", api.Version).
		Str("movies", cfg.Data.MoviesPath).
		Str("ratings", cfg.Data.RatingsPath).
		Str("similarity", cfg.Data.SimilarityPath).
		Msg("Starting Marquee with supervisor tree")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); restrict it in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := recommend.LoadDataset(ctx, cfg.DataPaths(), logging.WithComponent("dataset"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	store := initCache(cfg)
	if closer, ok := store.(*cache.RedisStore); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing redis cache")
			}
		}()
	}

	engine, err := initEngine(cfg, data, store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(engine, api.WithImageBaseURL(cfg.Data.ImageBaseURL))
	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	router := api.NewRouter(handler, chiMw)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger("supervisor"),
		supervisor.TreeConfigFromConfig(cfg.Supervisor),
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(
		server, addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http"),
	))

	// The LRU expires lazily on read; the janitor sweeps entries nobody asks for.
	if lru, ok := store.(*cache.LRU); ok {
		tree.AddMaintenanceService(lru)
	}
	if cfg.Supervisor.StatsInterval > 0 {
		tree.AddMaintenanceService(services.NewStatsReporterService(
			engine, cfg.Supervisor.StatsInterval, logging.WithComponent("stats"),
		))
	}

	logging.Info().Str("addr", addr).Msg("Supervisor tree starting")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Marquee stopped")
}

// initCache builds the response cache store. A redis backend that cannot be
// reached falls back to the in-process LRU so the service still starts.
func initCache(cfg *config.Config) cache.Store {
	if !cfg.Cache.Enabled {
		logging.Info().Msg("Response cache disabled (CACHE_ENABLED=false)")
		return nil
	}

	storeCfg := cfg.CacheStoreConfig()
	store, err := cache.New(storeCfg)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("backend", string(storeCfg.Backend)).
			Msg("Failed to initialize cache backend, using in-memory cache")
		return cache.NewLRU(storeCfg.MaxEntries, storeCfg.DefaultTTL)
	}

	logging.Info().
		Str("backend", store.Name()).
		Dur("ttl", storeCfg.DefaultTTL).
		Msg("Response cache enabled")
	return store
}

// initEngine wires the item-based scorer and popularity ranker over the
// loaded dataset.
func initEngine(cfg *config.Config, data *recommend.Dataset, store cache.Store) (*recommend.Engine, error) {
	engineCfg := cfg.EngineConfig()

	scorer := algorithms.NewItemCF(algorithms.ItemCFConfig{
		StrictSimilarityRange: engineCfg.Scoring.StrictSimilarityRange,
	}, data.Similarities)

	ranker := algorithms.NewPopularity(algorithms.PopularityConfig{
		MinSupport: engineCfg.Popularity.MinSupport,
		MinAverage: engineCfg.Popularity.MinAverage,
	}, data.CataloguedItemStats())

	logger := logging.WithComponent("recommend")
	logEngineConfig(logger, engineCfg)

	var opts []recommend.Option
	if store != nil {
		opts = append(opts, recommend.WithCache(store))
	}
	return recommend.NewEngine(engineCfg, data, scorer, ranker, logger, opts...)
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func logEngineConfig(logger zerolog.Logger, cfg *recommend.Config) {
	logger.Info().
		Int("default_top_n", cfg.Limits.DefaultTopN).
		Int("max_top_n", cfg.Limits.MaxTopN).
		Int("min_support", cfg.Popularity.MinSupport).
		Float64("min_average", cfg.Popularity.MinAverage).
		Bool("strict_similarity_range", cfg.Scoring.StrictSimilarityRange).
		Bool("breaker", cfg.Breaker.Enabled).
		Msg("initializing recommendation engine")
}
