// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import (
	"sort"
	"strings"

	"github.com/hustlemap/hustlemap/internal/models"
)

// maxSimilarUsers caps the similar-user list per response.
const maxSimilarUsers = 5

// similarUsers ranks discoverable users by Jaccard skill overlap with
// the requesting user. The requesting user and users with no overlap
// are excluded.
func similarUsers(userID string, skills []string, candidates []models.User) []models.SimilarUser {
	mine := skillSet(skills)
	if len(mine) == 0 {
		return nil
	}

	var out []models.SimilarUser
	for _, candidate := range candidates {
		if candidate.ID == userID || !candidate.Discoverable {
			continue
		}

		theirs := skillSet(candidate.Skills)
		common := intersection(mine, theirs)
		if len(common) == 0 {
			continue
		}

		union := len(mine) + len(theirs) - len(common)
		out = append(out, models.SimilarUser{
			UserID:       candidate.ID,
			Username:     candidate.Username,
			Skills:       candidate.Skills,
			Similarity:   float64(len(common)) / float64(union),
			CommonSkills: common,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if len(out) > maxSimilarUsers {
		out = out[:maxSimilarUsers]
	}
	return out
}

// sharedOpportunityCount counts how many of resultIDs the other user
// has already been shown.
func sharedOpportunityCount(resultIDs []string, theirSeen map[string]struct{}) int {
	count := 0
	for _, id := range resultIDs {
		if _, ok := theirSeen[id]; ok {
			count++
		}
	}
	return count
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		norm := strings.ToLower(strings.TrimSpace(s))
		if norm != "" {
			set[norm] = struct{}{}
		}
	}
	return set
}

func intersection(a, b map[string]struct{}) []string {
	var common []string
	for s := range a {
		if _, ok := b[s]; ok {
			common = append(common, s)
		}
	}
	sort.Strings(common)
	return common
}
