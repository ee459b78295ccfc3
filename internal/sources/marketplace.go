// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package sources

import "github.com/hustlemap/hustlemap/internal/models"

// MarketplaceSourceID is the stable id of the freelance marketplace source.
const MarketplaceSourceID = "marketplace"

// NewMarketplace creates the built-in freelance marketplace source:
// client-work gigs in the style of Upwork or Fiverr listings.
func NewMarketplace() Source {
	return &catalogSource{
		id:   MarketplaceSourceID,
		name: "Freelance Marketplace",
		catalog: []models.Opportunity{
			{
				Title:          "Freelance blog writing for SaaS companies",
				Description:    "Write weekly blog posts for B2B software companies. Steady retainer work once two or three clients are landed.",
				RequiredSkills: []string{"writing"},
				NiceToHaveSkills: []string{
					"seo", "content marketing",
				},
				Type:         models.TypeFreelance,
				Income:       models.IncomeRange{Min: 800, Max: 3000, Timeframe: "month"},
				StartupCost:  models.CostRange{Min: 0, Max: 100},
				TimeRequired: models.TimeRange{MinHours: 5, MaxHours: 15},
				EntryBarrier: models.TierLow,
				MarketDemand: models.TierHigh,
				StepsToStart: []string{
					"Pick a niche and write three sample posts",
					"Create profiles on two freelance marketplaces",
					"Pitch ten companies with a personalized sample",
				},
				SuccessStories: []models.SuccessStory{
					{Name: "Priya", Outcome: "Replaced half her salary with four retainer clients", Timeframe: "5 months"},
				},
				Resources: []models.Resource{
					{Title: "Freelance writing starter guide", URL: "https://example.com/freelance-writing"},
				},
			},
			{
				Title:            "Landing page copywriting projects",
				Description:      "Fixed-price landing page and email sequence copy for small businesses launching products.",
				RequiredSkills:   []string{"copywriting"},
				NiceToHaveSkills: []string{"email marketing", "paid ads"},
				Type:             models.TypeFreelance,
				Income:           models.IncomeRange{Min: 300, Max: 1500, Timeframe: "project"},
				StartupCost:      models.CostRange{Min: 0, Max: 50},
				TimeRequired:     models.TimeRange{MinHours: 6, MaxHours: 12},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierHigh,
				StepsToStart: []string{
					"Rewrite three real landing pages as portfolio pieces",
					"List a fixed-price package on a marketplace",
				},
			},
			{
				Title:            "Logo and brand identity design gigs",
				Description:      "Brand packages for new businesses: logo, color palette, and basic guidelines.",
				RequiredSkills:   []string{"graphic design"},
				NiceToHaveSkills: []string{"branding"},
				Type:             models.TypeFreelance,
				Income:           models.IncomeRange{Min: 400, Max: 2500, Timeframe: "project"},
				StartupCost:      models.CostRange{Min: 50, Max: 300},
				TimeRequired:     models.TimeRange{MinHours: 8, MaxHours: 20},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierMedium,
				StepsToStart: []string{
					"Build a portfolio of five concept brands",
					"Offer two discounted packages for testimonials",
				},
			},
			{
				Title:            "Small business website builds",
				Description:      "Design and ship marketing sites for local businesses, then upsell hosting and maintenance retainers.",
				RequiredSkills:   []string{"web development"},
				NiceToHaveSkills: []string{"ui design", "seo"},
				Type:             models.TypeFreelance,
				Income:           models.IncomeRange{Min: 1000, Max: 5000, Timeframe: "project"},
				StartupCost:      models.CostRange{Min: 0, Max: 200},
				TimeRequired:     models.TimeRange{MinHours: 10, MaxHours: 25},
				EntryBarrier:     models.TierHigh,
				MarketDemand:     models.TierHigh,
			},
			{
				Title:            "Virtual assistant and customer support",
				Description:      "Inbox management, scheduling, and customer support for online business owners. Low barrier, reliable hours.",
				RequiredSkills:   []string{"customer support"},
				NiceToHaveSkills: []string{"project management"},
				Type:             models.TypeService,
				Income:           models.IncomeRange{Min: 400, Max: 1600, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 0, Max: 0},
				TimeRequired:     models.TimeRange{MinHours: 10, MaxHours: 30},
				EntryBarrier:     models.TierLow,
				MarketDemand:     models.TierMedium,
			},
			{
				Title:            "Data cleanup and reporting automation",
				Description:      "Spreadsheet cleanup, dashboard builds, and recurring report automation for operations teams.",
				RequiredSkills:   []string{"data analysis"},
				NiceToHaveSkills: []string{"python", "automation"},
				Type:             models.TypeFreelance,
				Income:           models.IncomeRange{Min: 500, Max: 3000, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 0, Max: 0},
				TimeRequired:     models.TimeRange{MinHours: 5, MaxHours: 15},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierHigh,
			},
		},
	}
}
