// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package scoring implements the classification core of the discovery
// pipeline: two interchangeable strategies producing a comparable 0-1
// match score with ranked explanation factors, plus collaborative and
// ROI adjustments.
package scoring

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/models"
)

// maxFactors caps the ranked explanation factors per opportunity.
const maxFactors = 3

// scoreChunkSize sets the batch size for parallel scoring. Scoring is
// embarrassingly parallel; chunking keeps goroutine counts bounded.
const scoreChunkSize = 25

// Strategy scores one opportunity against one user's preferences. Both
// implementations are pure functions of their inputs so they are
// independently unit testable.
type Strategy interface {
	// Name returns the strategy identifier ("classic", "feature_vector").
	Name() string

	// Score returns a 0-1 match score and up to three ranked factors.
	// hist may be nil when the user has no recorded interactions.
	Score(op models.Opportunity, prefs models.Preferences, hist *models.History) (float64, []models.MatchFactor, error)
}

// Engine selects a strategy per request and scores opportunity batches.
// A feature-vector failure falls back to classic scoring for that
// request only, never failing the run.
type Engine struct {
	classic Strategy
	ml      Strategy
	logger  zerolog.Logger
}

// NewEngine creates a scoring engine with both strategies.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(classic, ml Strategy, logger zerolog.Logger) *Engine {
	return &Engine{
		classic: classic,
		ml:      ml,
		logger:  logger.With().Str("component", "scoring").Logger(),
	}
}

// ScoreAll annotates every opportunity with a match score, explanation
// factors, and (when requested) an ROI score, then returns the slice
// sorted by score descending along with the name of the strategy that
// actually produced the scores.
func (e *Engine) ScoreAll(ctx context.Context, ops []models.Opportunity, prefs models.Preferences, hist *models.History) ([]models.Opportunity, string) {
	strategy := e.classic
	if prefs.Flags.UseML && e.ml != nil {
		strategy = e.ml
	}

	used := strategy.Name()
	e.scoreChunked(ctx, ops, strategy, prefs, hist)

	// Any ML failure downgrades the whole request to classic so the
	// result set is scored consistently.
	if strategy != e.classic && e.anyUnscored(ops) {
		e.logger.Warn().
			Str("strategy", strategy.Name()).
			Msg("strategy failed, falling back to classic scoring")
		used = e.classic.Name()
		e.scoreChunked(ctx, ops, e.classic, prefs, hist)
	}

	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].MatchScore > ops[j].MatchScore
	})
	return ops, used
}

// scoreChunked scores ops in parallel chunks.
func (e *Engine) scoreChunked(ctx context.Context, ops []models.Opportunity, strategy Strategy, prefs models.Preferences, hist *models.History) {
	var wg sync.WaitGroup
	for start := 0; start < len(ops); start += scoreChunkSize {
		end := start + scoreChunkSize
		if end > len(ops) {
			end = len(ops)
		}

		wg.Add(1)
		go func(chunk []models.Opportunity) {
			defer wg.Done()
			for i := range chunk {
				if ctx.Err() != nil {
					return
				}
				e.scoreOne(&chunk[i], strategy, prefs, hist)
			}
		}(ops[start:end])
	}
	wg.Wait()
}

// scoreOne scores a single opportunity in place. Failures leave the
// opportunity unscored for the fallback pass to pick up.
func (e *Engine) scoreOne(op *models.Opportunity, strategy Strategy, prefs models.Preferences, hist *models.History) {
	score, factors, err := strategy.Score(*op, prefs, hist)
	if err != nil {
		op.MatchScore = 0
		op.MatchFactors = nil
		return
	}

	op.MatchScore = clamp01(score)
	op.MatchFactors = factors
	if prefs.Flags.IncludeROI {
		op.ROIScore = ROI(*op)
	}
}

// anyUnscored reports whether any opportunity lacks explanation
// factors, the marker scoreOne leaves on failure.
func (e *Engine) anyUnscored(ops []models.Opportunity) bool {
	for i := range ops {
		if ops[i].MatchFactors == nil {
			return true
		}
	}
	return false
}

// skillMatch computes the blended required/nice-to-have skill component
// shared by both strategies: exact matches count 1.0, substring matches
// 0.5, normalized by the respective skill counts, with required skills
// at 75% weight and nice-to-haves at 25%.
func skillMatch(op models.Opportunity, prefs models.Preferences) float64 {
	required := matchRatio(op.RequiredSkills, prefs)
	nice := matchRatio(op.NiceToHaveSkills, prefs)

	switch {
	case len(op.RequiredSkills) == 0 && len(op.NiceToHaveSkills) == 0:
		return 0.5 // No requirements stated; neutral signal.
	case len(op.RequiredSkills) == 0:
		return nice
	case len(op.NiceToHaveSkills) == 0:
		return required
	default:
		return 0.75*required + 0.25*nice
	}
}

// matchRatio scores how well the user's skills cover a requirement
// list: exact match 1.0, substring match 0.5, divided by list length.
func matchRatio(skills []string, prefs models.Preferences) float64 {
	if len(skills) == 0 {
		return 0
	}

	var credit float64
	for _, want := range skills {
		wantNorm := strings.ToLower(strings.TrimSpace(want))
		best := 0.0
		for _, have := range prefs.Skills {
			haveNorm := strings.ToLower(strings.TrimSpace(have))
			if haveNorm == wantNorm {
				best = 1.0
				break
			}
			if haveNorm != "" && (strings.Contains(haveNorm, wantNorm) || strings.Contains(wantNorm, haveNorm)) && best < 0.5 {
				best = 0.5
			}
		}
		credit += best
	}
	return clamp01(credit / float64(len(skills)))
}

// timeFit scores the opportunity's weekly hours against availability.
// Past 100% of availability the penalty grows quadratically.
func timeFit(op models.Opportunity, prefs models.Preferences) float64 {
	available := prefs.HoursPerWeek()
	if available <= 0 {
		return 0.5
	}

	needed := float64(op.TimeRequired.MinHours+op.TimeRequired.MaxHours) / 2
	if needed <= 0 {
		return 0.7 // Unstated commitment; mildly positive.
	}

	ratio := needed / float64(available)
	if ratio <= 1 {
		return 1 - 0.2*ratio
	}
	return clampFloor(0.8-2*(ratio-1)*(ratio-1), 0)
}

// riskFit scores the symmetric tier distance between the opportunity's
// entry barrier and the user's risk appetite.
func riskFit(op models.Opportunity, prefs models.Preferences) float64 {
	switch op.EntryBarrier.Distance(prefs.RiskAppetite) {
	case 0:
		return 1.0
	case 1:
		return 0.6
	default:
		return 0.2
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFloor(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

// topFactors sorts factors by weight and keeps the best three.
func topFactors(factors []models.MatchFactor) []models.MatchFactor {
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Weight > factors[j].Weight
	})
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}
	return factors
}
