// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import (
	"testing"

	"github.com/hustlemap/hustlemap/internal/models"
)

func TestFilterByPreferences(t *testing.T) {
	prefs := models.Preferences{
		TimePerWeek:  "10",
		RiskAppetite: models.TierLow,
		IncomeGoal:   1000,
	}

	tests := []struct {
		name string
		op   models.Opportunity
		keep bool
	}{
		{
			name: "fits everything",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 5, MaxHours: 10},
				EntryBarrier: models.TierLow,
				Income:       models.IncomeRange{Min: 500, Max: 1500, Timeframe: "month"},
			},
			keep: true,
		},
		{
			name: "slight time overage tolerated",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 12, MaxHours: 15},
				EntryBarrier: models.TierLow,
				Income:       models.IncomeRange{Min: 500, Max: 1500, Timeframe: "month"},
			},
			keep: true,
		},
		{
			name: "needs far too many hours",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 20, MaxHours: 30},
				EntryBarrier: models.TierLow,
				Income:       models.IncomeRange{Min: 500, Max: 1500, Timeframe: "month"},
			},
			keep: false,
		},
		{
			name: "one risk tier above tolerated",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 5, MaxHours: 8},
				EntryBarrier: models.TierMedium,
				Income:       models.IncomeRange{Min: 500, Max: 1500, Timeframe: "month"},
			},
			keep: true,
		},
		{
			name: "two risk tiers above dropped",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 5, MaxHours: 8},
				EntryBarrier: models.TierHigh,
				Income:       models.IncomeRange{Min: 500, Max: 1500, Timeframe: "month"},
			},
			keep: false,
		},
		{
			name: "income floor missed",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 5, MaxHours: 8},
				EntryBarrier: models.TierLow,
				Income:       models.IncomeRange{Min: 50, Max: 120, Timeframe: "month"},
			},
			keep: false,
		},
		{
			name: "yearly income normalized before floor check",
			op: models.Opportunity{
				TimeRequired: models.TimeRange{MinHours: 5, MaxHours: 8},
				EntryBarrier: models.TierLow,
				Income:       models.IncomeRange{Min: 6000, Max: 24000, Timeframe: "year"},
			},
			keep: true,
		},
		{
			name: "unstated fields never exclude",
			op:   models.Opportunity{},
			keep: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, dropped := filterByPreferences([]models.Opportunity{tt.op}, prefs)
			if got := len(kept) == 1; got != tt.keep {
				t.Errorf("kept = %v (dropped %d), want keep = %v", got, dropped, tt.keep)
			}
		})
	}
}

func TestFilterAnyRiskAppetiteKeepsHighBarrier(t *testing.T) {
	prefs := models.Preferences{RiskAppetite: models.TierAny}
	ops := []models.Opportunity{{EntryBarrier: models.TierHigh}}

	kept, _ := filterByPreferences(ops, prefs)
	if len(kept) != 1 {
		t.Error("high barrier dropped despite any risk appetite")
	}
}

func TestDeduplicate(t *testing.T) {
	ops := []models.Opportunity{
		{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"},
	}
	seen := map[string]struct{}{"c": {}}

	out := deduplicate(ops, seen)

	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("out ids = %q, %q, want a, b", out[0].ID, out[1].ID)
	}
}

func TestDeduplicateNilSeen(t *testing.T) {
	out := deduplicate([]models.Opportunity{{ID: "a"}, {ID: "a"}}, nil)
	if len(out) != 1 {
		t.Errorf("len(out) = %d, want 1", len(out))
	}
}
