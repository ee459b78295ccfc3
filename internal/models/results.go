// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package models

import "time"

// SourceStat records one source's contribution to an aggregation pass.
type SourceStat struct {
	// Count is the number of opportunities the source contributed.
	Count int `json:"count"`

	// LatencyMS is how long the source call took.
	LatencyMS int64 `json:"latency_ms"`

	// Err holds the failure message when the source errored or timed out.
	Err string `json:"err,omitempty"`
}

// SimilarUser is a user with overlapping skills, computed per request
// and never persisted beyond the response.
type SimilarUser struct {
	// UserID identifies the similar user.
	UserID string `json:"user_id"`

	// Username is the display name.
	Username string `json:"username"`

	// Skills is the similar user's skill set.
	Skills []string `json:"skills"`

	// Similarity is the skill overlap score (0-1).
	Similarity float64 `json:"similarity"`

	// SharedOpportunities counts opportunities both users have seen.
	SharedOpportunities int `json:"shared_opportunities"`

	// CommonSkills lists the overlapping skills.
	CommonSkills []string `json:"common_skills"`
}

// Results is the output of one orchestrator run. Created once per run,
// persisted, and returned to the caller.
type Results struct {
	// RequestID uniquely identifies this discovery run.
	RequestID string `json:"request_id"`

	// UserID is the user the discovery ran for.
	UserID string `json:"user_id"`

	// Opportunities is the final ordered opportunity list.
	Opportunities []Opportunity `json:"opportunities"`

	// SimilarUsers lists skill-overlapping users when discoverable.
	SimilarUsers []SimilarUser `json:"similar_users,omitempty"`

	// Flags echoes the feature flags the run honored.
	Flags FeatureFlags `json:"flags"`

	// SourceStats holds per-source performance for the fan-out stage.
	SourceStats map[string]SourceStat `json:"source_stats"`

	// Strategy names the scoring strategy that produced the scores.
	Strategy string `json:"strategy"`

	// LatencyMS is the wall-clock duration of the run.
	LatencyMS int64 `json:"latency_ms"`

	// CreatedAt is when the run completed.
	CreatedAt time.Time `json:"created_at"`
}

// User is the minimal user record the pipeline needs for
// personalization and similar-user matching.
type User struct {
	// ID is the user identifier.
	ID string `json:"id"`

	// Username is the display name.
	Username string `json:"username"`

	// Skills is the user's stored skill set.
	Skills []string `json:"skills"`

	// Discoverable opts the user into similar-user matching.
	Discoverable bool `json:"discoverable"`
}

// History summarizes a user's recorded interactions for collaborative
// scoring adjustments.
type History struct {
	// SavedByCategory counts saved opportunities per type.
	SavedByCategory map[OpportunityType]int `json:"saved_by_category"`

	// ViewedNeverSaved holds ids viewed repeatedly but never saved.
	ViewedNeverSaved map[string]int `json:"viewed_never_saved"`

	// SeenIDs holds every opportunity id previously surfaced to the user.
	SeenIDs map[string]struct{} `json:"-"`
}
