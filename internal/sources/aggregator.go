// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package sources

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/models"
)

// DefaultSourceTimeout bounds each individual source call.
const DefaultSourceTimeout = 30 * time.Second

// Cacher receives every aggregated opportunity. Implemented by the
// opportunity cache; declared here to avoid an import cycle.
type Cacher interface {
	Put(op models.Opportunity)
}

// Aggregator fans out to all registered sources concurrently. Each
// source runs under its own timeout; a slow or failing source
// contributes nothing and is recorded in the per-source stats, but the
// aggregation as a whole always succeeds. Total latency is bounded by
// the slowest source, not the sum.
type Aggregator struct {
	registry *Registry
	cache    Cacher
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewAggregator creates an aggregator over the given registry. The
// cache may be nil in tests; a non-positive timeout falls back to
// DefaultSourceTimeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(registry *Registry, cache Cacher, timeout time.Duration, logger zerolog.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	return &Aggregator{
		registry: registry,
		cache:    cache,
		timeout:  timeout,
		logger:   logger.With().Str("component", "aggregator").Logger(),
	}
}

// sourceResult carries one source's contribution back to Collect.
type sourceResult struct {
	sourceID string
	ops      []models.Opportunity
	stat     models.SourceStat
}

// Collect queries every registered source concurrently and merges the
// results. Every returned opportunity is stamped with its originating
// source id and written into the cache.
func (a *Aggregator) Collect(ctx context.Context, prefs models.Preferences) ([]models.Opportunity, map[string]models.SourceStat) {
	srcs := a.registry.All()
	stats := make(map[string]models.SourceStat, len(srcs))
	if len(srcs) == 0 {
		return nil, stats
	}

	results := make(chan sourceResult, len(srcs))
	for _, s := range srcs {
		go func(s Source) {
			results <- a.collectOne(ctx, s, prefs)
		}(s)
	}

	var merged []models.Opportunity
	for range srcs {
		res := <-results
		stats[res.sourceID] = res.stat
		merged = append(merged, res.ops...)
	}

	a.logger.Debug().
		Int("sources", len(srcs)).
		Int("opportunities", len(merged)).
		Msg("aggregation complete")

	return merged, stats
}

// collectOne queries a single source under its own timeout.
func (a *Aggregator) collectOne(ctx context.Context, s Source, prefs models.Preferences) sourceResult {
	start := time.Now()
	res := sourceResult{sourceID: s.ID()}

	srcCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type outcome struct {
		ops []models.Opportunity
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		ops, err := s.Opportunities(srcCtx, prefs.Skills, prefs)
		done <- outcome{ops: ops, err: err}
	}()

	var ops []models.Opportunity
	var err error
	select {
	case <-srcCtx.Done():
		err = srcCtx.Err()
	case out := <-done:
		ops, err = out.ops, out.err
	}

	res.stat.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		res.stat.Err = err.Error()
		a.logger.Warn().
			Str("source", s.ID()).
			Err(err).
			Msg("source failed, contributing zero opportunities")
		return res
	}

	for i := range ops {
		ops[i].SourceID = s.ID()
		if ops[i].ID == "" {
			ops[i].ID = models.NewID(s.ID())
		}
		if a.cache != nil {
			a.cache.Put(ops[i])
		}
	}

	res.ops = ops
	res.stat.Count = len(ops)
	return res
}
