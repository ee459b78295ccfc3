// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package ai

import (
	"strings"

	"github.com/hustlemap/hustlemap/internal/models"
)

// FallbackSourceID stamps the hand-authored supplementary opportunities
// served when the model service is unavailable.
const FallbackSourceID = "ai-fallback"

// Skill categories the fallback catalog is keyed by.
const (
	categoryWriting   = "writing"
	categoryDesign    = "design"
	categoryTech      = "tech"
	categoryMarketing = "marketing"
	categoryGeneral   = "general"
)

// categoryKeywords maps skill substrings to a fallback category. First
// category with any match wins, checked in declaration order.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{categoryWriting, []string{"writ", "copy", "edit", "blog", "journal"}},
	{categoryDesign, []string{"design", "illustrat", "photoshop", "figma", "ui", "ux"}},
	{categoryTech, []string{"program", "develop", "coding", "python", "javascript", "go", "sql", "data"}},
	{categoryMarketing, []string{"market", "seo", "social media", "ads", "email"}},
}

// DetectCategory picks the fallback category that best matches the
// user's skills.
func DetectCategory(skills []string) string {
	for _, entry := range categoryKeywords {
		for _, skill := range skills {
			s := strings.ToLower(skill)
			for _, kw := range entry.keywords {
				if strings.Contains(s, kw) {
					return entry.category
				}
			}
		}
	}
	return categoryGeneral
}

// Supplement returns up to count hand-authored opportunities for the
// user's detected skill category, each with a fresh id. Deterministic
// given the same skills and count.
func Supplement(prefs models.Preferences, count int) []models.Opportunity {
	catalog := fallbackCatalog[DetectCategory(prefs.Skills)]
	if count > len(catalog) {
		count = len(catalog)
	}

	out := make([]models.Opportunity, 0, count)
	for _, op := range catalog[:count] {
		op.ID = models.NewID(FallbackSourceID)
		op.SourceID = FallbackSourceID
		out = append(out, op)
	}
	return out
}

var fallbackCatalog = map[string][]models.Opportunity{
	categoryWriting: {
		{
			Title:          "Ghostwrite LinkedIn Content for Founders",
			Description:    "Write short-form posts for startup founders who have expertise but no time. Most engagements are 4-8 posts per month on retainer.",
			RequiredSkills: []string{"writing"},
			Type:           models.TypeFreelance,
			Income:         models.IncomeRange{Min: 500, Max: 2500, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 50},
			TimeRequired:   models.TimeRange{MinHours: 4, MaxHours: 8},
			EntryBarrier:   models.TierLow,
			StepsToStart: []string{
				"Pick a niche you can speak to credibly",
				"Write five sample posts in that niche",
				"Pitch ten founders with a sample attached",
			},
			TimeToFirstRevenue: "2-4 weeks",
		},
		{
			Title:            "Sell a Notion Template Pack for Writers",
			Description:      "Package your own drafting and pitch-tracking workflows as a paid template bundle on a marketplace.",
			RequiredSkills:   []string{"writing"},
			NiceToHaveSkills: []string{"notion"},
			Type:             models.TypeDigitalProduct,
			Income:           models.IncomeRange{Min: 50, Max: 500, Timeframe: "month"},
			StartupCost:      models.CostRange{Min: 0, Max: 20},
			TimeRequired:     models.TimeRange{MinHours: 2, MaxHours: 5},
			EntryBarrier:     models.TierLow,
			TimeToFirstRevenue: "2-6 weeks",
		},
		{
			Title:          "Paid Niche Newsletter",
			Description:    "A weekly deep-dive newsletter in a narrow professional niche. Free tier builds the list, paid tier carries analysis.",
			RequiredSkills: []string{"writing"},
			Type:           models.TypeContent,
			Income:         models.IncomeRange{Min: 100, Max: 2000, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 30},
			TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 10},
			EntryBarrier:   models.TierMedium,
			TimeToFirstRevenue: "2-4 months",
		},
	},
	categoryDesign: {
		{
			Title:          "Design Social Media Kits for Small Businesses",
			Description:    "Fixed-price branded template kits local businesses reuse for months. Productized service, predictable scope.",
			RequiredSkills: []string{"design"},
			Type:           models.TypeService,
			Income:         models.IncomeRange{Min: 400, Max: 2000, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 100},
			TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 10},
			EntryBarrier:   models.TierLow,
			TimeToFirstRevenue: "2-4 weeks",
		},
		{
			Title:          "Sell Icon and Illustration Packs",
			Description:    "Themed asset packs on creative marketplaces. Slow compounding catalog income from work you own outright.",
			RequiredSkills: []string{"illustration"},
			Type:           models.TypePassive,
			Income:         models.IncomeRange{Min: 50, Max: 800, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 50},
			TimeRequired:   models.TimeRange{MinHours: 3, MaxHours: 8},
			EntryBarrier:   models.TierLow,
			TimeToFirstRevenue: "1-3 months",
		},
	},
	categoryTech: {
		{
			Title:          "Build Internal Tools for Non-Technical Teams",
			Description:    "Small automation and dashboard projects for businesses drowning in spreadsheets. Scoped fixed-fee builds.",
			RequiredSkills: []string{"programming"},
			Type:           models.TypeFreelance,
			Income:         models.IncomeRange{Min: 1000, Max: 5000, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 50},
			TimeRequired:   models.TimeRange{MinHours: 8, MaxHours: 15},
			EntryBarrier:   models.TierMedium,
			TimeToFirstRevenue: "3-6 weeks",
		},
		{
			Title:            "Launch a Paid API or Micro-SaaS",
			Description:      "A single-feature hosted tool solving one painful niche problem, billed monthly.",
			RequiredSkills:   []string{"programming"},
			NiceToHaveSkills: []string{"marketing"},
			Type:             models.TypePassive,
			Income:           models.IncomeRange{Min: 100, Max: 3000, Timeframe: "month"},
			StartupCost:      models.CostRange{Min: 20, Max: 200},
			TimeRequired:     models.TimeRange{MinHours: 10, MaxHours: 20},
			EntryBarrier:     models.TierHigh,
			TimeToFirstRevenue: "2-4 months",
		},
	},
	categoryMarketing: {
		{
			Title:          "Run Email Campaigns for E-commerce Shops",
			Description:    "Own the email channel for two or three small shops. Performance is measurable, so retainers stick.",
			RequiredSkills: []string{"email marketing"},
			Type:           models.TypeService,
			Income:         models.IncomeRange{Min: 600, Max: 3000, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 50},
			TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 12},
			EntryBarrier:   models.TierMedium,
			TimeToFirstRevenue: "3-6 weeks",
		},
		{
			Title:          "Local SEO Audits as a Productized Service",
			Description:    "Fixed-price audit plus fix-list for local service businesses. Repeatable checklist work sold at a flat rate.",
			RequiredSkills: []string{"seo"},
			Type:           models.TypeService,
			Income:         models.IncomeRange{Min: 300, Max: 1500, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 100},
			TimeRequired:   models.TimeRange{MinHours: 4, MaxHours: 8},
			EntryBarrier:   models.TierLow,
			TimeToFirstRevenue: "2-4 weeks",
		},
	},
	categoryGeneral: {
		{
			Title:          "Virtual Assistant for Solo Professionals",
			Description:    "Inbox, scheduling, and research support for consultants and coaches. Low barrier, steady hourly work.",
			Type:           models.TypeService,
			Income:         models.IncomeRange{Min: 400, Max: 1500, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 0},
			TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 15},
			EntryBarrier:   models.TierLow,
			TimeToFirstRevenue: "1-3 weeks",
		},
		{
			Title:          "Resell Refurbished Electronics",
			Description:    "Source, clean up, and flip used electronics on local marketplaces. Margin comes from patience and testing.",
			Type:           models.TypeService,
			Income:         models.IncomeRange{Min: 200, Max: 1200, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 100, Max: 500},
			TimeRequired:   models.TimeRange{MinHours: 4, MaxHours: 10},
			EntryBarrier:   models.TierLow,
			TimeToFirstRevenue: "1-2 weeks",
		},
		{
			Title:          "Teach a Skill on a Course Marketplace",
			Description:    "Record a focused beginner course on anything you can demonstrate end to end. Catalog income after the upfront build.",
			Type:           models.TypeInfoProduct,
			Income:         models.IncomeRange{Min: 50, Max: 1000, Timeframe: "month"},
			StartupCost:    models.CostRange{Min: 0, Max: 150},
			TimeRequired:   models.TimeRange{MinHours: 3, MaxHours: 6},
			EntryBarrier:   models.TierMedium,
			TimeToFirstRevenue: "2-4 months",
		},
	},
}
