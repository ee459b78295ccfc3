// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package discovery implements the top-level pipeline: source fan-out,
// deduplication, preference filtering, scoring, skill-gap enrichment,
// AI enhancement, diversity enforcement, and persistence.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/ai"
	"github.com/hustlemap/hustlemap/internal/market"
	"github.com/hustlemap/hustlemap/internal/metrics"
	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/opcache"
	"github.com/hustlemap/hustlemap/internal/scoring"
	"github.com/hustlemap/hustlemap/internal/skills"
	"github.com/hustlemap/hustlemap/internal/sources"
	"github.com/hustlemap/hustlemap/internal/storage"
)

// Enhancement thresholds.
const (
	// supplementBelow is the pool size under which the AI pass
	// generates additional candidates.
	supplementBelow = 10

	// supplementCount is how many supplements to request.
	supplementCount = 5

	// rerankTopN is how many of the top results the AI pass may
	// reorder.
	rerankTopN = 10
)

// SourceInfo describes a registered source for listing endpoints.
type SourceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Orchestrator sequences one discovery run end to end. All subsystems
// are injected at construction; the orchestrator owns no state beyond
// its collaborators and is safe for concurrent use.
type Orchestrator struct {
	registry   *sources.Registry
	aggregator *sources.Aggregator
	engine     *scoring.Engine
	analyzer   *skills.Analyzer
	enhancer   *ai.Service
	market     *market.Service
	cache      *opcache.Cache
	resolver   *opcache.Resolver
	results    storage.ResultStore
	users      storage.UserStore
	logger     zerolog.Logger
}

// Config bundles the orchestrator's collaborators.
type Config struct {
	Registry   *sources.Registry
	Aggregator *sources.Aggregator
	Engine     *scoring.Engine
	Analyzer   *skills.Analyzer
	Enhancer   *ai.Service
	Market     *market.Service
	Cache      *opcache.Cache
	Resolver   *opcache.Resolver
	Results    storage.ResultStore
	Users      storage.UserStore
}

// NewOrchestrator wires a discovery orchestrator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOrchestrator(cfg Config, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		registry:   cfg.Registry,
		aggregator: cfg.Aggregator,
		engine:     cfg.Engine,
		analyzer:   cfg.Analyzer,
		enhancer:   cfg.Enhancer,
		market:     cfg.Market,
		cache:      cfg.Cache,
		resolver:   cfg.Resolver,
		results:    cfg.Results,
		users:      cfg.Users,
		logger:     logger.With().Str("component", "discovery").Logger(),
	}
}

// Discover runs the full pipeline for one user. The only fatal error
// is an unknown user; every other failure degrades and the run still
// returns a coherent result.
func (o *Orchestrator) Discover(ctx context.Context, userID string, prefs models.Preferences) (*models.Results, error) {
	start := time.Now()

	user, err := o.users.User(ctx, userID)
	if err != nil {
		metrics.DiscoveryRuns.WithLabelValues("unknown_user").Inc()
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}

	prefs.UserID = userID
	if len(prefs.Skills) == 0 {
		prefs.Skills = user.Skills
	}

	requestID := uuid.NewString()
	logger := o.logger.With().
		Str("request_id", requestID).
		Str("user_id", userID).
		Logger()

	ops, stats := o.aggregator.Collect(ctx, prefs)
	o.recordSourceStats(stats)
	logger.Debug().Int("collected", len(ops)).Msg("source fan-out complete")

	for i := range ops {
		o.market.Backfill(&ops[i])
	}

	seen, err := o.results.PreviousOpportunityIDs(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("history read failed, deduplicating within run only")
		seen = nil
	}
	ops = deduplicate(ops, seen)

	ops, dropped := filterByPreferences(ops, prefs)
	metrics.DiscoveryFilteredOut.Add(float64(dropped))

	hist := o.loadHistory(ctx, userID, logger)
	ops, strategyUsed := o.engine.ScoreAll(ctx, ops, prefs, hist)

	if prefs.Flags.UseSkillGap {
		o.enrichSkillGaps(ops, prefs)
	}

	if prefs.Flags.UseEnhanced && o.enhancer != nil {
		ops, strategyUsed = o.enhance(ctx, ops, prefs, hist, strategyUsed)
	}

	ops = enforceDiversity(ops)

	var similar []models.SimilarUser
	if prefs.Flags.Discoverable {
		similar = o.findSimilarUsers(ctx, userID, prefs, ops, logger)
	}

	results := &models.Results{
		RequestID:     requestID,
		UserID:        userID,
		Opportunities: ops,
		SimilarUsers:  similar,
		Flags:         prefs.Flags,
		SourceStats:   stats,
		Strategy:      strategyUsed,
		LatencyMS:     time.Since(start).Milliseconds(),
		CreatedAt:     time.Now(),
	}

	// A successful recommendation is not blocked by a failed write of
	// its own audit trail.
	if err := o.results.SaveResult(ctx, userID, results); err != nil {
		logger.Error().Err(err).Msg("persisting discovery results failed")
	}

	metrics.ObserveDiscovery(time.Since(start), len(ops), strategyUsed)
	logger.Info().
		Int("opportunities", len(ops)).
		Str("strategy", strategyUsed).
		Int64("latency_ms", results.LatencyMS).
		Msg("discovery run complete")
	return results, nil
}

// FromSource queries a single source directly, bypassing the pipeline.
func (o *Orchestrator) FromSource(ctx context.Context, sourceID string, limit int, skills []string) ([]models.Opportunity, error) {
	return o.registry.FromSource(ctx, sourceID, limit, skills)
}

// OpportunityByID resolves an id through the cache fallback chain.
// The second return is false when the id resolves to nothing at all.
func (o *Orchestrator) OpportunityByID(ctx context.Context, id string) (models.Opportunity, bool) {
	return o.resolver.Resolve(ctx, id)
}

// RegisterSource adds a source to the fan-out set.
func (o *Orchestrator) RegisterSource(s sources.Source) {
	o.registry.Register(s)
}

// Sources lists the registered sources.
func (o *Orchestrator) Sources() []SourceInfo {
	all := o.registry.All()
	out := make([]SourceInfo, len(all))
	for i, s := range all {
		out[i] = SourceInfo{ID: s.ID(), Name: s.Name()}
	}
	return out
}

// enhance supplements a thin candidate pool with generated
// opportunities and lets the model reorder the top of the list. The
// pool is re-scored when supplements arrive so every entry carries a
// comparable score.
func (o *Orchestrator) enhance(ctx context.Context, ops []models.Opportunity, prefs models.Preferences, hist *models.History, strategyUsed string) ([]models.Opportunity, string) {
	if len(ops) < supplementBelow {
		supplements := o.enhancer.Supplement(ctx, prefs, supplementCount)
		for i := range supplements {
			o.cache.Put(supplements[i])
		}
		if len(supplements) > 0 {
			ops, strategyUsed = o.engine.ScoreAll(ctx, append(ops, supplements...), prefs, hist)
		}
	}

	n := rerankTopN
	if n > len(ops) {
		n = len(ops)
	}
	if n < 2 {
		return ops, strategyUsed
	}

	high, low := ops[0].MatchScore, ops[n-1].MatchScore
	reranked := o.enhancer.Rerank(ctx, ops[:n], prefs)
	copy(ops[:n], reranked)

	// Respace the top scores so the model's ordering survives the
	// score re-sort in diversity enforcement.
	step := (high - low) / float64(n-1)
	for i := 0; i < n; i++ {
		ops[i].MatchScore = high - step*float64(i)
	}
	return ops, strategyUsed
}

// enrichSkillGaps annotates every opportunity with its gap report.
func (o *Orchestrator) enrichSkillGaps(ops []models.Opportunity, prefs models.Preferences) {
	for i := range ops {
		report := o.analyzer.Gap(ops[i].RequiredSkills, ops[i].NiceToHaveSkills, prefs.Skills)
		ops[i].SkillGapDays = report.Days
		ops[i].SkillGap = &report
	}
}

// findSimilarUsers computes the discoverable-user overlap list.
func (o *Orchestrator) findSimilarUsers(ctx context.Context, userID string, prefs models.Preferences, ops []models.Opportunity, logger zerolog.Logger) []models.SimilarUser {
	candidates, err := o.users.AllUsers(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("listing users for similarity failed")
		return nil
	}

	similar := similarUsers(userID, prefs.Skills, candidates)
	if len(similar) == 0 {
		return nil
	}

	resultIDs := make([]string, len(ops))
	for i := range ops {
		resultIDs[i] = ops[i].ID
	}
	for i := range similar {
		theirSeen, err := o.results.PreviousOpportunityIDs(ctx, similar[i].UserID)
		if err != nil {
			continue
		}
		similar[i].SharedOpportunities = sharedOpportunityCount(resultIDs, theirSeen)
	}
	return similar
}

// loadHistory reads interaction history, nil when unavailable.
func (o *Orchestrator) loadHistory(ctx context.Context, userID string, logger zerolog.Logger) *models.History {
	hist, err := o.results.History(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("history read failed, scoring without collaborative signal")
		return nil
	}
	return hist
}

func (o *Orchestrator) recordSourceStats(stats map[string]models.SourceStat) {
	for sourceID, stat := range stats {
		metrics.SourceDuration.WithLabelValues(sourceID).Observe(float64(stat.LatencyMS) / 1000)
		metrics.SourceOpportunities.WithLabelValues(sourceID).Add(float64(stat.Count))
		if stat.Err != "" {
			metrics.SourceFailures.WithLabelValues(sourceID).Inc()
		}
	}
}
