// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import (
	"context"
	"errors"

	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/opcache"
	"github.com/hustlemap/hustlemap/internal/storage"
)

// ResultHistoryFinder adapts a storage.ResultStore to the resolver's
// history lookup contract, translating ErrNotFound into a plain miss.
type ResultHistoryFinder struct {
	results storage.ResultStore
}

// NewResultHistoryFinder wraps a result store for the resolver.
func NewResultHistoryFinder(results storage.ResultStore) *ResultHistoryFinder {
	return &ResultHistoryFinder{results: results}
}

// FindOpportunity scans persisted results for the id.
func (f *ResultHistoryFinder) FindOpportunity(ctx context.Context, id string) (models.Opportunity, bool, error) {
	op, err := f.results.FindOpportunity(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Opportunity{}, false, nil
	}
	if err != nil {
		return models.Opportunity{}, false, err
	}
	return *op, true, nil
}

var _ opcache.HistoryFinder = (*ResultHistoryFinder)(nil)
