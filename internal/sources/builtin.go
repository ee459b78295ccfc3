// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package sources

import (
	"context"

	"github.com/hustlemap/hustlemap/internal/models"
)

// catalogSource serves a curated catalog of opportunity templates,
// returning the entries that overlap the requested skills. The three
// built-in sources are catalog-backed; external marketplace scrapers
// plug in through the same Source interface.
type catalogSource struct {
	id      string
	name    string
	catalog []models.Opportunity
}

// ID returns the source identifier.
func (c *catalogSource) ID() string { return c.id }

// Name returns the source display name.
func (c *catalogSource) Name() string { return c.name }

// Opportunities returns catalog entries matched to the given skills.
// With no skills, low-barrier entries are returned so new users still
// see a usable starting set. Every returned entry gets a fresh id.
func (c *catalogSource) Opportunities(ctx context.Context, skills []string, prefs models.Preferences) ([]models.Opportunity, error) {
	matcher := models.Preferences{Skills: skills}

	var out []models.Opportunity
	for _, entry := range c.catalog {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !c.matches(matcher, entry) {
			continue
		}
		op := entry.Clone()
		op.ID = models.NewID(c.id)
		op.SourceID = c.id
		out = append(out, op)
	}
	return out, nil
}

// matches reports whether an entry is relevant to the user's skills.
func (c *catalogSource) matches(matcher models.Preferences, entry models.Opportunity) bool {
	if len(matcher.Skills) == 0 {
		return entry.EntryBarrier == models.TierLow
	}
	for _, s := range entry.RequiredSkills {
		if matcher.HasSkill(s) {
			return true
		}
	}
	for _, s := range entry.NiceToHaveSkills {
		if matcher.HasSkill(s) {
			return true
		}
	}
	return false
}

// Ensure the built-ins satisfy the interface.
var _ Source = (*catalogSource)(nil)
