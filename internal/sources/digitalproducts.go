// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package sources

import "github.com/hustlemap/hustlemap/internal/models"

// DigitalProductsSourceID is the stable id of the digital products source.
const DigitalProductsSourceID = "digital-products"

// NewDigitalProducts creates the built-in digital products source:
// sellable artifacts in the style of Gumroad or template marketplaces.
func NewDigitalProducts() Source {
	return &catalogSource{
		id:   DigitalProductsSourceID,
		name: "Digital Products",
		catalog: []models.Opportunity{
			{
				Title:            "Notion template packs",
				Description:      "Design and sell productivity template packs. Build once, sell repeatedly with near-zero marginal cost.",
				RequiredSkills:   []string{"no-code tools"},
				NiceToHaveSkills: []string{"graphic design", "social media"},
				Type:             models.TypeDigitalProduct,
				Income:           models.IncomeRange{Min: 50, Max: 1500, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 0, Max: 50},
				TimeRequired:     models.TimeRange{MinHours: 3, MaxHours: 10},
				EntryBarrier:     models.TierLow,
				MarketDemand:     models.TierMedium,
				StepsToStart: []string{
					"Build one template solving a problem you have",
					"List it on a template marketplace",
					"Post a walkthrough on social media",
				},
				SuccessStories: []models.SuccessStory{
					{Name: "Marco", Outcome: "First $500 month from three template packs", Timeframe: "4 months"},
				},
			},
			{
				Title:            "Online course on a niche skill",
				Description:      "Package expertise into a video course. Higher lift upfront, strong recurring sales with the right niche.",
				RequiredSkills:   []string{"online teaching"},
				NiceToHaveSkills: []string{"video editing", "email marketing"},
				Type:             models.TypeInfoProduct,
				Income:           models.IncomeRange{Min: 200, Max: 4000, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 100, Max: 500},
				TimeRequired:     models.TimeRange{MinHours: 8, MaxHours: 20},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierMedium,
				StepsToStart: []string{
					"Validate the topic with a free workshop",
					"Outline and record a minimum viable course",
					"Launch to an email list before polishing",
				},
			},
			{
				Title:            "Stock photo and preset bundles",
				Description:      "Sell themed photo bundles and editing presets to creators and small brands.",
				RequiredSkills:   []string{"photography"},
				NiceToHaveSkills: []string{"social media"},
				Type:             models.TypeDigitalProduct,
				Income:           models.IncomeRange{Min: 50, Max: 800, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 0, Max: 100},
				TimeRequired:     models.TimeRange{MinHours: 4, MaxHours: 10},
				EntryBarrier:     models.TierLow,
				MarketDemand:     models.TierLow,
			},
			{
				Title:            "Micro SaaS or paid API",
				Description:      "Ship a small focused tool charging a monthly subscription. The hardest path here, and the most durable.",
				RequiredSkills:   []string{"web development"},
				NiceToHaveSkills: []string{"ui design", "sales"},
				Type:             models.TypePassive,
				Income:           models.IncomeRange{Min: 100, Max: 5000, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 50, Max: 500},
				TimeRequired:     models.TimeRange{MinHours: 10, MaxHours: 30},
				EntryBarrier:     models.TierHigh,
				MarketDemand:     models.TierMedium,
			},
			{
				Title:            "Ebook or practical guide",
				Description:      "Write a short, practical ebook for a specific audience and sell it directly.",
				RequiredSkills:   []string{"writing"},
				NiceToHaveSkills: []string{"editing", "email marketing"},
				Type:             models.TypeInfoProduct,
				Income:           models.IncomeRange{Min: 50, Max: 1000, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 0, Max: 100},
				TimeRequired:     models.TimeRange{MinHours: 5, MaxHours: 12},
				EntryBarrier:     models.TierLow,
				MarketDemand:     models.TierMedium,
			},
		},
	}
}
