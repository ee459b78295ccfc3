// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package scoring

import (
	"fmt"

	"github.com/hustlemap/hustlemap/internal/models"
)

// Classic component weights. They sum to 0.90, leaving room for the
// curated-source bonus without clamping typical scores.
const (
	classicSkillWeight  = 0.40
	classicIncomeWeight = 0.20
	classicTimeWeight   = 0.15
	classicRiskWeight   = 0.15
	curatedSourceBonus  = 0.10
)

// Classic is the deterministic weighted scoring strategy: a fixed
// linear blend of skill match, income fit, time fit, and risk fit, with
// a small bonus for curated and AI-generated sources.
type Classic struct {
	// curated is the set of source ids that earn the source bonus.
	curated map[string]struct{}
}

// NewClassic creates the classic strategy. curatedSources lists the
// source ids whose listings are hand-reviewed or AI-personalized.
func NewClassic(curatedSources []string) *Classic {
	curated := make(map[string]struct{}, len(curatedSources))
	for _, id := range curatedSources {
		curated[id] = struct{}{}
	}
	return &Classic{curated: curated}
}

// Name returns the strategy identifier.
func (c *Classic) Name() string { return "classic" }

// Score computes the weighted blend. It never fails.
func (c *Classic) Score(op models.Opportunity, prefs models.Preferences, _ *models.History) (float64, []models.MatchFactor, error) {
	skill := skillMatch(op, prefs)
	income := classicIncomeFit(op, prefs)
	timeScore := timeFit(op, prefs)
	risk := riskFit(op, prefs)

	score := classicSkillWeight*skill +
		classicIncomeWeight*income +
		classicTimeWeight*timeScore +
		classicRiskWeight*risk

	factors := []models.MatchFactor{
		{
			Name:   "skill_match",
			Detail: fmt.Sprintf("your skills cover %.0f%% of what this needs", skill*100),
			Weight: classicSkillWeight * skill,
		},
		{
			Name:   "income_fit",
			Detail: fmt.Sprintf("estimated $%.0f/month against your goal", op.Income.Monthly()),
			Weight: classicIncomeWeight * income,
		},
		{
			Name:   "time_fit",
			Detail: fmt.Sprintf("needs %d-%d hours/week", op.TimeRequired.MinHours, op.TimeRequired.MaxHours),
			Weight: classicTimeWeight * timeScore,
		},
		{
			Name:   "risk_fit",
			Detail: fmt.Sprintf("%s entry barrier vs your %s risk appetite", op.EntryBarrier, prefs.RiskAppetite),
			Weight: classicRiskWeight * risk,
		},
	}

	if _, ok := c.curated[op.SourceID]; ok {
		score += curatedSourceBonus
		factors = append(factors, models.MatchFactor{
			Name:   "curated_source",
			Detail: "from a curated source",
			Weight: curatedSourceBonus,
		})
	}

	return clamp01(score), topFactors(factors), nil
}

// classicIncomeFit maps the ratio of the opportunity's monthly income
// to the user's goal through a step function that favors meeting or
// exceeding the goal.
func classicIncomeFit(op models.Opportunity, prefs models.Preferences) float64 {
	if prefs.IncomeGoal <= 0 {
		return 0.7 // No goal stated; mildly positive.
	}

	ratio := op.Income.Monthly() / prefs.IncomeGoal
	switch {
	case ratio >= 1.0:
		return 1.0
	case ratio >= 0.75:
		return 0.8
	case ratio >= 0.5:
		return 0.6
	case ratio >= 0.25:
		return 0.4
	default:
		return 0.2
	}
}

var _ Strategy = (*Classic)(nil)
