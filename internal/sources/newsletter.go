// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package sources

import "github.com/hustlemap/hustlemap/internal/models"

// NewsletterSourceID is the stable id of the content plays source.
const NewsletterSourceID = "newsletter"

// NewNewsletter creates the built-in content plays source: audience
// businesses in the style of paid newsletters and niche channels.
func NewNewsletter() Source {
	return &catalogSource{
		id:   NewsletterSourceID,
		name: "Content & Audience Plays",
		catalog: []models.Opportunity{
			{
				Title:            "Paid niche newsletter",
				Description:      "Weekly curated newsletter for a professional niche, monetized with paid tiers and sponsorships.",
				RequiredSkills:   []string{"writing"},
				NiceToHaveSkills: []string{"content marketing", "email marketing"},
				Type:             models.TypeContent,
				Income:           models.IncomeRange{Min: 100, Max: 2500, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 0, Max: 100},
				TimeRequired:     models.TimeRange{MinHours: 4, MaxHours: 10},
				EntryBarrier:     models.TierLow,
				MarketDemand:     models.TierMedium,
				StepsToStart: []string{
					"Pick a niche you can curate better than anyone",
					"Publish weekly for eight weeks before monetizing",
					"Open a paid tier at 500 subscribers",
				},
				SuccessStories: []models.SuccessStory{
					{Name: "Dana", Outcome: "1,200 subscribers and two sponsors", Timeframe: "6 months"},
				},
				Resources: []models.Resource{
					{Title: "Newsletter growth playbook", URL: "https://example.com/newsletter-playbook"},
				},
			},
			{
				Title:            "YouTube tutorial channel",
				Description:      "Screen-recorded tutorials in a skill you already have. Ad revenue plus affiliate links once the catalog compounds.",
				RequiredSkills:   []string{"video editing"},
				NiceToHaveSkills: []string{"online teaching", "seo"},
				Type:             models.TypeContent,
				Income:           models.IncomeRange{Min: 50, Max: 2000, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 50, Max: 300},
				TimeRequired:     models.TimeRange{MinHours: 6, MaxHours: 15},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierMedium,
			},
			{
				Title:            "Niche podcast with sponsorships",
				Description:      "Interview-format podcast in a business niche. Sponsorship revenue follows a consistent publishing streak.",
				RequiredSkills:   []string{"podcasting"},
				NiceToHaveSkills: []string{"audio editing", "social media"},
				Type:             models.TypeContent,
				Income:           models.IncomeRange{Min: 50, Max: 1500, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 100, Max: 400},
				TimeRequired:     models.TimeRange{MinHours: 5, MaxHours: 12},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierLow,
			},
			{
				Title:            "SEO affiliate site",
				Description:      "Review and comparison content targeting buyer-intent keywords, monetized with affiliate commissions.",
				RequiredSkills:   []string{"seo"},
				NiceToHaveSkills: []string{"writing", "data analysis"},
				Type:             models.TypePassive,
				Income:           models.IncomeRange{Min: 0, Max: 3000, Timeframe: "month"},
				StartupCost:      models.CostRange{Min: 100, Max: 500},
				TimeRequired:     models.TimeRange{MinHours: 5, MaxHours: 15},
				EntryBarrier:     models.TierMedium,
				MarketDemand:     models.TierMedium,
			},
		},
	}
}
