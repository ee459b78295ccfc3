// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import (
	"strings"

	"github.com/hustlemap/hustlemap/internal/models"
)

// Filter thresholds. Deliberately lenient so the filter trims the
// candidate pool rather than starving it.
const (
	// timeOverageFactor is how far past stated availability an
	// opportunity's minimum commitment may go before it is dropped.
	timeOverageFactor = 1.25

	// riskTierSlack is how many tiers above the user's risk appetite an
	// entry barrier may sit.
	riskTierSlack = 1

	// incomeFloorShare is the fraction of the income goal an
	// opportunity's minimum monthly income must reach.
	incomeFloorShare = 0.15
)

// filterByPreferences drops opportunities that clearly cannot work for
// the user. Returns the survivors and the number dropped.
func filterByPreferences(ops []models.Opportunity, prefs models.Preferences) ([]models.Opportunity, int) {
	out := ops[:0]
	for i := range ops {
		if passesPreferences(&ops[i], prefs) {
			out = append(out, ops[i])
		}
	}
	return out, len(ops) - len(out)
}

// passesPreferences applies the three drop rules.
func passesPreferences(op *models.Opportunity, prefs models.Preferences) bool {
	if available := prefs.HoursPerWeek(); available > 0 && op.TimeRequired.MinHours > 0 {
		if float64(op.TimeRequired.MinHours) > timeOverageFactor*float64(available) {
			return false
		}
	}

	if exceedsRiskAppetite(op.EntryBarrier, prefs.RiskAppetite) {
		return false
	}

	if prefs.IncomeGoal > 0 && op.Income.Max > 0 {
		if minMonthlyIncome(op.Income) < incomeFloorShare*prefs.IncomeGoal {
			return false
		}
	}

	return true
}

// exceedsRiskAppetite reports whether barrier sits more than
// riskTierSlack tiers above the user's appetite. Unknown and Any tiers
// never exclude.
func exceedsRiskAppetite(barrier, appetite models.Tier) bool {
	if barrier == models.TierUnknown || barrier == models.TierAny {
		return false
	}
	if appetite == models.TierUnknown || appetite == models.TierAny {
		return false
	}
	return int(barrier)-int(appetite) > riskTierSlack
}

// minMonthlyIncome normalizes the range's lower bound to a monthly
// figure.
func minMonthlyIncome(r models.IncomeRange) float64 {
	switch strings.ToLower(r.Timeframe) {
	case "year", "yearly", "annual":
		return r.Min / 12
	default:
		return r.Min
	}
}
