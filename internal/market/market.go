// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package market provides static, periodically refreshed reference data
// mapping (category, platform) pairs to income ranges, time-to-first-revenue
// estimates, and demand signals. The discovery pipeline uses it to
// backfill fields that sources leave empty.
package market

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/models"
)

// Entry is one reference row for a (category, platform) pair.
type Entry struct {
	// Category is the opportunity category the row describes.
	Category models.OpportunityType `json:"category"`

	// Platform is the platform the row describes ("upwork", "gumroad").
	// Empty means the category-wide default.
	Platform string `json:"platform,omitempty"`

	// Income is the typical income band.
	Income models.IncomeRange `json:"income"`

	// TimeToFirstRevenue is a coarse estimate ("1-3 months").
	TimeToFirstRevenue string `json:"time_to_first_revenue"`

	// Demand is the current demand tier.
	Demand models.Tier `json:"demand"`

	// GrowthPercent is the year-over-year demand growth signal.
	GrowthPercent float64 `json:"growth_percent"`
}

// Service holds the reference tables. It supports concurrent readers;
// Refresh serializes writes.
type Service struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	refreshed time.Time
	logger    zerolog.Logger
}

// NewService creates a market data service seeded with the built-in
// reference tables.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(logger zerolog.Logger) *Service {
	s := &Service{
		entries: make(map[string]Entry),
		logger:  logger.With().Str("component", "market").Logger(),
	}
	s.load(seedEntries())
	return s
}

func key(category models.OpportunityType, platform string) string {
	return category.String() + "|" + strings.ToLower(strings.TrimSpace(platform))
}

func (s *Service) load(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[key(e.Category, e.Platform)] = e
	}
	s.refreshed = time.Now()
}

// Lookup returns the reference entry for a category and platform.
// A platform-specific row wins; otherwise the category default applies.
func (s *Service) Lookup(category models.OpportunityType, platform string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[key(category, platform)]; ok {
		return e, true
	}
	e, ok := s.entries[key(category, "")]
	return e, ok
}

// Backfill fills missing income, time-to-revenue, and demand fields on
// an opportunity from the reference tables. Populated fields are left
// untouched.
func (s *Service) Backfill(op *models.Opportunity) {
	entry, ok := s.Lookup(op.Type, op.SourceID)
	if !ok {
		return
	}

	if op.Income.Min == 0 && op.Income.Max == 0 {
		op.Income = entry.Income
	}
	if op.TimeToFirstRevenue == "" {
		op.TimeToFirstRevenue = entry.TimeToFirstRevenue
	}
	if op.MarketDemand == models.TierUnknown {
		op.MarketDemand = entry.Demand
	}
}

// Refresh replaces the reference tables. Wired to the shared cron
// scheduler; the built-in tables are re-derived until an external feed
// is configured.
func (s *Service) Refresh() {
	s.load(seedEntries())
	s.logger.Debug().Int("entries", len(s.entries)).Msg("market reference data refreshed")
}

// LastRefreshed returns when the tables were last loaded.
func (s *Service) LastRefreshed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}
