// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import (
	"sort"

	"github.com/hustlemap/hustlemap/internal/models"
)

// targetResultSize is how many opportunities the final set aims for.
const targetResultSize = 18

// enforceDiversity caps each opportunity type's contribution so no
// single type dominates, backfills remaining slots from the
// highest-scoring leftovers, and re-sorts by score. Input must already
// be sorted descending by score; the output is too.
func enforceDiversity(ops []models.Opportunity) []models.Opportunity {
	if len(ops) <= 1 {
		return ops
	}

	distinct := make(map[models.OpportunityType]struct{})
	for i := range ops {
		distinct[ops[i].Type] = struct{}{}
	}
	typeCap := perTypeCap(len(distinct))

	taken := make([]models.Opportunity, 0, targetResultSize)
	var leftovers []models.Opportunity
	counts := make(map[models.OpportunityType]int, len(distinct))

	for i := range ops {
		if counts[ops[i].Type] < typeCap {
			counts[ops[i].Type]++
			taken = append(taken, ops[i])
		} else {
			leftovers = append(leftovers, ops[i])
		}
	}

	// Backfill from best leftovers until the target size is reached.
	for _, op := range leftovers {
		if len(taken) >= targetResultSize {
			break
		}
		taken = append(taken, op)
	}
	if len(taken) > targetResultSize {
		taken = taken[:targetResultSize]
	}

	sort.SliceStable(taken, func(i, j int) bool {
		return taken[i].MatchScore > taken[j].MatchScore
	})
	return taken
}

// perTypeCap scales the cap with how many distinct types are present:
// a varied pool gets a tight cap, a narrow pool a loose one.
func perTypeCap(distinctTypes int) int {
	switch {
	case distinctTypes > 3:
		return 3
	case distinctTypes == 3:
		return 4
	default:
		return 5
	}
}
