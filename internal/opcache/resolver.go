// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package opcache

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/metrics"
	"github.com/hustlemap/hustlemap/internal/models"
)

// HistoryFinder scans persisted discovery results for an embedded
// opportunity id. Implemented by the storage layer.
type HistoryFinder interface {
	FindOpportunity(ctx context.Context, id string) (models.Opportunity, bool, error)
}

// Requerier re-runs a source query. Implemented by the source registry.
type Requerier interface {
	Requery(ctx context.Context, sourceID string, skills []string) ([]models.Opportunity, error)
}

// Backfiller fills missing opportunity fields from reference data.
// Implemented by the market data service.
type Backfiller interface {
	Backfill(op *models.Opportunity)
}

// Resolver resolves an opportunity id through the fallback chain:
// cache, persisted result history, re-query of the owning source, and
// finally a synthesized placeholder. Opportunity ids double as deep
// links from persisted results, so an id must always resolve to
// something coherent; callers distinguish placeholders by the
// Synthesized flag.
type Resolver struct {
	cache   *Cache
	history HistoryFinder
	sources Requerier
	market  Backfiller
	logger  zerolog.Logger
}

// NewResolver creates a resolver. history, sources, and market may each
// be nil, which skips the corresponding stage.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(cache *Cache, history HistoryFinder, srcs Requerier, market Backfiller, logger zerolog.Logger) *Resolver {
	return &Resolver{
		cache:   cache,
		history: history,
		sources: srcs,
		market:  market,
		logger:  logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve walks the fallback chain, stopping at the first hit. It only
// returns ok=false for ids too malformed to synthesize from.
func (r *Resolver) Resolve(ctx context.Context, id string) (models.Opportunity, bool) {
	if op, ok := r.cache.Get(id); ok {
		metrics.ResolveFallbacks.WithLabelValues("cache").Inc()
		return op, true
	}

	if op, ok := r.fromHistory(ctx, id); ok {
		metrics.ResolveFallbacks.WithLabelValues("history").Inc()
		r.cache.Put(op)
		return op, true
	}

	if op, ok := r.fromSource(ctx, id); ok {
		metrics.ResolveFallbacks.WithLabelValues("source").Inc()
		r.cache.Put(op)
		return op, true
	}

	op, ok := r.synthesize(id)
	if ok {
		metrics.ResolveFallbacks.WithLabelValues("synthesized").Inc()
	} else {
		metrics.ResolveFallbacks.WithLabelValues("miss").Inc()
	}
	return op, ok
}

// fromHistory scans persisted discovery results for the id.
func (r *Resolver) fromHistory(ctx context.Context, id string) (models.Opportunity, bool) {
	if r.history == nil {
		return models.Opportunity{}, false
	}
	op, found, err := r.history.FindOpportunity(ctx, id)
	if err != nil {
		r.logger.Warn().Err(err).Str("id", id).Msg("history scan failed, continuing chain")
		return models.Opportunity{}, false
	}
	return op, found
}

// fromSource re-queries the owning source, parsed from the id's prefix,
// and looks for an exact id match in the fresh results.
func (r *Resolver) fromSource(ctx context.Context, id string) (models.Opportunity, bool) {
	if r.sources == nil {
		return models.Opportunity{}, false
	}
	sourceID := models.SourceFromID(id)
	if sourceID == "" {
		return models.Opportunity{}, false
	}

	ops, err := r.sources.Requery(ctx, sourceID, nil)
	if err != nil {
		r.logger.Debug().Err(err).Str("source", sourceID).Msg("source requery failed, continuing chain")
		return models.Opportunity{}, false
	}
	for _, op := range ops {
		if op.ID == id {
			return op, true
		}
	}
	return models.Opportunity{}, false
}

// synthesize builds a best-effort placeholder from the id's fragments.
func (r *Resolver) synthesize(id string) (models.Opportunity, bool) {
	sourceID := models.SourceFromID(id)
	if sourceID == "" {
		return models.Opportunity{}, false
	}

	op := models.Opportunity{
		ID:          id,
		SourceID:    sourceID,
		Title:       titleFromSource(sourceID),
		Description: "Details for this opportunity are no longer cached. Run a fresh discovery to see current matches.",
		Type:        typeFromSource(sourceID),
		Synthesized: true,
	}
	if r.market != nil {
		r.market.Backfill(&op)
	}

	r.logger.Debug().Str("id", id).Msg("synthesized placeholder opportunity")
	return op, true
}

func titleFromSource(sourceID string) string {
	words := strings.Split(strings.ReplaceAll(sourceID, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ") + " opportunity"
}

// typeFromSource guesses the opportunity type from the source prefix.
func typeFromSource(sourceID string) models.OpportunityType {
	switch {
	case strings.Contains(sourceID, "market"):
		return models.TypeFreelance
	case strings.Contains(sourceID, "product"):
		return models.TypeDigitalProduct
	case strings.Contains(sourceID, "newsletter"), strings.Contains(sourceID, "content"):
		return models.TypeContent
	default:
		return models.TypeUnknown
	}
}
