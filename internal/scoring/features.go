// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hustlemap/hustlemap/internal/models"
)

// FeatureWeights configures the feature-vector strategy. Weights are
// normalized to sum to 1 at scoring time, so they need not sum to 1
// when configured.
type FeatureWeights struct {
	// Skill weights the skill match feature.
	Skill float64 `json:"skill" koanf:"skill"`

	// Time weights the availability fit feature.
	Time float64 `json:"time" koanf:"time"`

	// Risk weights the risk tier distance feature.
	Risk float64 `json:"risk" koanf:"risk"`

	// Income weights the income-vs-goal feature.
	Income float64 `json:"income" koanf:"income"`

	// Completeness weights how fully the record is filled in.
	Completeness float64 `json:"completeness" koanf:"completeness"`

	// Popularity weights observed social proof.
	Popularity float64 `json:"popularity" koanf:"popularity"`

	// Accessibility weights novice friendliness.
	Accessibility float64 `json:"accessibility" koanf:"accessibility"`

	// TimeToRevenue weights how fast first revenue arrives.
	TimeToRevenue float64 `json:"time_to_revenue" koanf:"time_to_revenue"`

	// Demand weights the market demand tier.
	Demand float64 `json:"demand" koanf:"demand"`

	// Diversity weights novelty against the user's saved categories.
	Diversity float64 `json:"diversity" koanf:"diversity"`
}

// DefaultFeatureWeights returns the production defaults.
func DefaultFeatureWeights() FeatureWeights {
	return FeatureWeights{
		Skill:         0.30,
		Time:          0.10,
		Risk:          0.08,
		Income:        0.15,
		Completeness:  0.05,
		Popularity:    0.07,
		Accessibility: 0.08,
		TimeToRevenue: 0.07,
		Demand:        0.05,
		Diversity:     0.05,
	}
}

// Sum totals all weights.
func (w FeatureWeights) Sum() float64 {
	return w.Skill + w.Time + w.Risk + w.Income + w.Completeness +
		w.Popularity + w.Accessibility + w.TimeToRevenue + w.Demand + w.Diversity
}

// Collaborative adjustment constants.
const (
	savedCategoryBoost     = 0.15
	ignoredPenalty         = 0.15
	ignoredViewThreshold   = 3
	roiBlendWeight         = 0.20
	collaborativeMinSample = 3
)

// FeatureVector is the ML-style strategy: a 10-dimensional feature
// vector combined under configurable normalized weights, with optional
// collaborative and ROI adjustments driven by the user's flags.
type FeatureVector struct {
	weights FeatureWeights
}

// NewFeatureVector creates the feature-vector strategy.
func NewFeatureVector(weights FeatureWeights) *FeatureVector {
	return &FeatureVector{weights: weights}
}

// Name returns the strategy identifier.
func (f *FeatureVector) Name() string { return "feature_vector" }

// Score builds the feature vector and combines it under the configured
// weights. A degenerate weight configuration is the strategy's failure
// mode; the engine falls back to classic scoring when it surfaces.
func (f *FeatureVector) Score(op models.Opportunity, prefs models.Preferences, hist *models.History) (float64, []models.MatchFactor, error) {
	total := f.weights.Sum()
	if total <= 0 {
		return 0, nil, fmt.Errorf("feature weights sum to %f, cannot normalize", total)
	}

	features := []struct {
		name   string
		value  float64
		weight float64
		detail string
	}{
		{"skill_match", skillMatch(op, prefs), f.weights.Skill, "skill overlap with requirements"},
		{"time_fit", timeFit(op, prefs), f.weights.Time, "weekly hours vs your availability"},
		{"risk_fit", riskFit(op, prefs), f.weights.Risk, "entry barrier vs your risk appetite"},
		{"income_fit", vectorIncomeFit(op, prefs), f.weights.Income, "estimated income vs your goal"},
		{"completeness", completeness(op), f.weights.Completeness, "how fully documented this opportunity is"},
		{"popularity", popularity(op), f.weights.Popularity, "social proof from success stories"},
		{"accessibility", accessibility(op), f.weights.Accessibility, "friendliness to beginners"},
		{"time_to_revenue", revenueSpeed(op), f.weights.TimeToRevenue, "how fast first revenue arrives"},
		{"market_demand", demand(op), f.weights.Demand, "current market demand"},
		{"diversity", diversityFactor(op, hist), f.weights.Diversity, "novelty vs what you usually save"},
	}

	var score float64
	factors := make([]models.MatchFactor, 0, len(features))
	for _, feat := range features {
		w := feat.weight / total
		score += w * feat.value
		factors = append(factors, models.MatchFactor{
			Name:   feat.name,
			Detail: feat.detail,
			Weight: w * feat.value,
		})
	}

	score = f.collaborativeAdjust(score, op, hist)

	if prefs.Flags.IncludeROI {
		score = (1-roiBlendWeight)*score + roiBlendWeight*(ROI(op)/100)
	}

	return clamp01(score), topFactors(factors), nil
}

// collaborativeAdjust boosts opportunities matching the user's saved
// category mix and penalizes items viewed repeatedly but never saved.
func (f *FeatureVector) collaborativeAdjust(score float64, op models.Opportunity, hist *models.History) float64 {
	if hist == nil {
		return score
	}

	totalSaved := 0
	for _, n := range hist.SavedByCategory {
		totalSaved += n
	}
	if totalSaved >= collaborativeMinSample {
		share := float64(hist.SavedByCategory[op.Type]) / float64(totalSaved)
		score += savedCategoryBoost * share
	}

	if hist.ViewedNeverSaved[op.ID] >= ignoredViewThreshold {
		score -= ignoredPenalty
	}

	return score
}

// vectorIncomeFit is the continuous income feature. Deliberately a
// different curve from the classic step function; the two strategies
// are documented as independently configurable.
func vectorIncomeFit(op models.Opportunity, prefs models.Preferences) float64 {
	if prefs.IncomeGoal <= 0 {
		return 0.6
	}
	ratio := op.Income.Monthly() / prefs.IncomeGoal
	if ratio > 1.5 {
		ratio = 1.5
	}
	return clamp01(ratio / 1.5)
}

// completeness measures how fully the record is populated.
func completeness(op models.Opportunity) float64 {
	score := 0.0
	if len(op.Description) >= 40 {
		score += 0.3
	}
	if len(op.StepsToStart) > 0 {
		score += 0.25
	}
	if len(op.SuccessStories) > 0 {
		score += 0.2
	}
	if len(op.Resources) > 0 {
		score += 0.15
	}
	if op.Income.Max > 0 {
		score += 0.1
	}
	return clamp01(score)
}

// popularity uses success stories as the observed social-proof signal.
func popularity(op models.Opportunity) float64 {
	return clamp01(float64(len(op.SuccessStories)) / 3)
}

// accessibility scores novice friendliness from the entry barrier.
func accessibility(op models.Opportunity) float64 {
	switch op.EntryBarrier {
	case models.TierLow:
		return 1.0
	case models.TierMedium:
		return 0.6
	case models.TierHigh:
		return 0.3
	default:
		return 0.5
	}
}

// demand scores the market demand tier.
func demand(op models.Opportunity) float64 {
	switch op.MarketDemand {
	case models.TierHigh:
		return 1.0
	case models.TierMedium:
		return 0.6
	case models.TierLow:
		return 0.3
	default:
		return 0.5
	}
}

// diversityFactor rewards categories underrepresented in the user's
// saved history.
func diversityFactor(op models.Opportunity, hist *models.History) float64 {
	if hist == nil {
		return 0.5
	}
	total := 0
	for _, n := range hist.SavedByCategory {
		total += n
	}
	if total == 0 {
		return 0.5
	}
	share := float64(hist.SavedByCategory[op.Type]) / float64(total)
	return clamp01(1 - share)
}

// revenueSpeed converts the time-to-first-revenue estimate to a 0-1
// feature where faster is higher.
func revenueSpeed(op models.Opportunity) float64 {
	weeks := parseTimeToRevenueWeeks(op.TimeToFirstRevenue)
	if weeks <= 0 {
		return 0.5
	}
	// 1 week -> ~1.0, 26 weeks -> ~0.0.
	return clamp01(1 - (weeks-1)/25)
}

var timeToRevenuePattern = regexp.MustCompile(`(\d+)\s*(?:-\s*(\d+))?\s*(week|month)`)

// parseTimeToRevenueWeeks parses estimates like "2-4 weeks" or
// "1-3 months" into a midpoint week count. Returns 0 when unparseable.
func parseTimeToRevenueWeeks(s string) float64 {
	m := timeToRevenuePattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0
	}

	lo, _ := strconv.Atoi(m[1])
	hi := lo
	if m[2] != "" {
		hi, _ = strconv.Atoi(m[2])
	}
	mid := float64(lo+hi) / 2
	if m[3] == "month" {
		mid *= 4.33
	}
	return mid
}

var _ Strategy = (*FeatureVector)(nil)
