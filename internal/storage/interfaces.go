// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package storage defines the persistence boundary of the discovery
// pipeline. Two implementations exist: an in-memory store used in
// tests and as the default, and a Badger-backed store for durable
// deployments.
package storage

import (
	"context"

	"github.com/hustlemap/hustlemap/internal/models"
)

// ResultStore persists discovery results and the interaction history
// derived from them.
type ResultStore interface {
	// SaveResult persists one discovery run for a user.
	SaveResult(ctx context.Context, userID string, results *models.Results) error

	// ResultsForUser returns a user's most recent results, newest
	// first, at most limit entries (0 means no limit).
	ResultsForUser(ctx context.Context, userID string, limit int) ([]*models.Results, error)

	// PreviousOpportunityIDs returns every opportunity id surfaced to
	// the user in past results.
	PreviousOpportunityIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// FindOpportunity scans persisted results for an embedded
	// opportunity with the given id. Returns ErrNotFound on miss.
	FindOpportunity(ctx context.Context, id string) (*models.Opportunity, error)

	// History returns the user's interaction history for collaborative
	// scoring. A user with no history gets an empty report, not an
	// error.
	History(ctx context.Context, userID string) (*models.History, error)

	// RecordSave notes that the user saved an opportunity.
	RecordSave(ctx context.Context, userID string, op models.Opportunity) error

	// RecordView notes that the user viewed an opportunity without
	// saving it.
	RecordView(ctx context.Context, userID, opportunityID string) error
}

// UserStore provides access to user records.
type UserStore interface {
	// User retrieves a user by id. Returns ErrNotFound if not exists.
	User(ctx context.Context, id string) (models.User, error)

	// SaveUser creates or updates a user record.
	SaveUser(ctx context.Context, user models.User) error

	// AllUsers returns every stored user, used for similar-user
	// matching.
	AllUsers(ctx context.Context) ([]models.User, error)
}
