// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import "github.com/hustlemap/hustlemap/internal/models"

// deduplicate keeps the first occurrence of every id within the run
// and drops ids the user has already been shown in past results. seen
// may be nil when history is unavailable.
func deduplicate(ops []models.Opportunity, seen map[string]struct{}) []models.Opportunity {
	inRun := make(map[string]struct{}, len(ops))
	out := ops[:0]
	for i := range ops {
		id := ops[i].ID
		if _, dup := inRun[id]; dup {
			continue
		}
		if _, shown := seen[id]; shown {
			continue
		}
		inRun[id] = struct{}{}
		out = append(out, ops[i])
	}
	return out
}
