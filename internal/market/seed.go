// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package market

import "github.com/hustlemap/hustlemap/internal/models"

// seedEntries returns the built-in reference tables. Figures are broad
// industry medians; platform rows override category defaults.
func seedEntries() []Entry {
	return []Entry{
		// Category defaults.
		{
			Category:           models.TypeFreelance,
			Income:             models.IncomeRange{Min: 500, Max: 5000, Timeframe: "month"},
			TimeToFirstRevenue: "2-4 weeks",
			Demand:             models.TierHigh,
			GrowthPercent:      12,
		},
		{
			Category:           models.TypeDigitalProduct,
			Income:             models.IncomeRange{Min: 100, Max: 3000, Timeframe: "month"},
			TimeToFirstRevenue: "1-3 months",
			Demand:             models.TierMedium,
			GrowthPercent:      18,
		},
		{
			Category:           models.TypeContent,
			Income:             models.IncomeRange{Min: 50, Max: 2000, Timeframe: "month"},
			TimeToFirstRevenue: "3-6 months",
			Demand:             models.TierMedium,
			GrowthPercent:      22,
		},
		{
			Category:           models.TypeService,
			Income:             models.IncomeRange{Min: 1000, Max: 8000, Timeframe: "month"},
			TimeToFirstRevenue: "2-6 weeks",
			Demand:             models.TierHigh,
			GrowthPercent:      9,
		},
		{
			Category:           models.TypePassive,
			Income:             models.IncomeRange{Min: 50, Max: 1000, Timeframe: "month"},
			TimeToFirstRevenue: "3-12 months",
			Demand:             models.TierLow,
			GrowthPercent:      6,
		},
		{
			Category:           models.TypeInfoProduct,
			Income:             models.IncomeRange{Min: 200, Max: 4000, Timeframe: "month"},
			TimeToFirstRevenue: "1-3 months",
			Demand:             models.TierMedium,
			GrowthPercent:      15,
		},

		// Platform-specific rows.
		{
			Category:           models.TypeFreelance,
			Platform:           "marketplace",
			Income:             models.IncomeRange{Min: 800, Max: 6000, Timeframe: "month"},
			TimeToFirstRevenue: "1-3 weeks",
			Demand:             models.TierHigh,
			GrowthPercent:      14,
		},
		{
			Category:           models.TypeDigitalProduct,
			Platform:           "digital-products",
			Income:             models.IncomeRange{Min: 150, Max: 3500, Timeframe: "month"},
			TimeToFirstRevenue: "1-2 months",
			Demand:             models.TierMedium,
			GrowthPercent:      20,
		},
		{
			Category:           models.TypeContent,
			Platform:           "newsletter",
			Income:             models.IncomeRange{Min: 100, Max: 2500, Timeframe: "month"},
			TimeToFirstRevenue: "2-4 months",
			Demand:             models.TierMedium,
			GrowthPercent:      25,
		},
	}
}
