// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Command server runs the HustleMap discovery API.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (HUSTLEMAP_CONFIG or ./config.yaml), then HUSTLEMAP_* environment
// variables. With no configuration at all the server runs fully in
// memory on port 8080:
//
//	docker run -d \
//	  -e HUSTLEMAP_STORAGE_DIR=/data/hustlemap \
//	  -e HUSTLEMAP_REDIS_ADDR=redis:6379 \
//	  -p 8080:8080 \
//	  ghcr.io/hustlemap/hustlemap
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/hustlemap/hustlemap/internal/ai"
	"github.com/hustlemap/hustlemap/internal/api"
	"github.com/hustlemap/hustlemap/internal/config"
	"github.com/hustlemap/hustlemap/internal/discovery"
	"github.com/hustlemap/hustlemap/internal/logging"
	"github.com/hustlemap/hustlemap/internal/market"
	"github.com/hustlemap/hustlemap/internal/metrics"
	"github.com/hustlemap/hustlemap/internal/opcache"
	"github.com/hustlemap/hustlemap/internal/sched"
	"github.com/hustlemap/hustlemap/internal/scoring"
	"github.com/hustlemap/hustlemap/internal/skills"
	"github.com/hustlemap/hustlemap/internal/sources"
	"github.com/hustlemap/hustlemap/internal/storage"
	"github.com/hustlemap/hustlemap/internal/storage/badgerstore"
	"github.com/hustlemap/hustlemap/internal/storage/memory"
	"github.com/hustlemap/hustlemap/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.With("main")

	logger.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("persistent", cfg.Storage.Persistent()).
		Bool("redis", cfg.Redis.Enabled()).
		Bool("ai", cfg.AI.Enabled()).
		Msg("configuration loaded")

	// Storage: Badger when a directory is configured, memory otherwise.
	var (
		results storage.ResultStore
		users   storage.UserStore
	)
	if cfg.Storage.Persistent() {
		db, err := badgerstore.Open(cfg.Storage.Dir)
		if err != nil {
			logging.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("failed to open store")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("closing store")
			}
		}()
		results = badgerstore.NewResultStore(db)
		users = badgerstore.NewUserStore(db)
	} else {
		logger.Warn().Msg("no storage directory configured, results will not survive restarts")
		results = memory.NewResultStore()
		users = memory.NewUserStore()
	}

	// Opportunity cache, optionally backed by Redis.
	cacheStore := opcache.NewMemoryStore()
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logging.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable")
		}
		cacheStore = opcache.NewRedisStore(client, cfg.Cache.TTL, logging.With("opcache"))
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("closing redis client")
			}
		}()
	}
	cache := opcache.New(cacheStore, cfg.Cache.TTL, logging.With("opcache"))
	defer cache.Clear()

	// Discovery sources.
	registry := sources.NewRegistry()
	registry.Register(sources.NewMarketplace())
	registry.Register(sources.NewDigitalProducts())
	registry.Register(sources.NewNewsletter())

	// AI enhancement: remote client when configured, otherwise the
	// service degrades every call to the deterministic catalog.
	var enhancer ai.Enhancer
	if cfg.AI.Enabled() {
		enhancer = ai.NewClient(ai.ClientConfig{
			BaseURL:           cfg.AI.BaseURL,
			APIKey:            cfg.AI.APIKey,
			Timeout:           cfg.AI.Timeout,
			RequestsPerMinute: cfg.AI.RequestsPerMinute,
		}, ai.NewTemplateStore(logging.With("ai")), logging.With("ai"))
	}
	aiService := ai.NewService(enhancer, logging.With("ai"), func() {
		metrics.AIFallbacks.Inc()
	})

	marketSvc := market.NewService(logging.With("market"))
	resolver := opcache.NewResolver(
		cache,
		discovery.NewResultHistoryFinder(results),
		registry,
		marketSvc,
		logging.With("opcache"),
	)

	orchestrator := discovery.NewOrchestrator(discovery.Config{
		Registry:   registry,
		Aggregator: sources.NewAggregator(registry, cache, cfg.Sources.Timeout, logging.With("sources")),
		Engine: scoring.NewEngine(
			scoring.NewClassic([]string{ai.GeneratedSourceID, ai.FallbackSourceID}),
			scoring.NewFeatureVector(cfg.Scoring.Weights),
			logging.With("scoring"),
		),
		Analyzer: skills.NewAnalyzer(skills.NewDefaultGraph()),
		Enhancer: aiService,
		Market:   marketSvc,
		Cache:    cache,
		Resolver: resolver,
		Results:  results,
		Users:    users,
	}, logging.With("discovery"))

	// Recurring maintenance jobs.
	scheduler := sched.New()
	sweepSchedule := "@every " + cfg.Cache.SweepInterval.String()
	if err := scheduler.Register("cache-sweep", sweepSchedule, func(context.Context) error {
		cache.Sweep()
		return nil
	}); err != nil {
		logging.Fatal().Err(err).Msg("failed to schedule cache sweep")
	}
	if err := scheduler.Register("market-refresh", cfg.Market.RefreshSchedule, func(context.Context) error {
		marketSvc.Refresh()
		return nil
	}); err != nil {
		logging.Fatal().Err(err).Msg("failed to schedule market refresh")
	}

	// HTTP server.
	handler := api.NewHandler(orchestrator, results, users)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})
	httpServer := api.NewServer(router, api.ServerOptions{
		Addr:            cfg.Server.Addr(),
		Timeout:         cfg.Server.Timeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	// Supervisor tree: background jobs and the API restart
	// independently of each other.
	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddJobService(scheduler)
	tree.AddAPIService(httpServer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Msg("hustlemap server starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("supervisor tree exited")
		os.Exit(1)
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		logger.Warn().Int("count", len(unstopped)).Msg("services missed the shutdown deadline")
	}
	logger.Info().Msg("hustlemap server stopped")
}
