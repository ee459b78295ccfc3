// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package memory provides in-memory storage implementations, used in
// tests and as the default when no data directory is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/storage"
)

// ResultStore is an in-memory storage.ResultStore.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string][]*models.Results      // userID -> newest first
	saved   map[string]map[models.OpportunityType]int // userID -> type -> count
	views   map[string]map[string]int         // userID -> opportunityID -> views
	savedID map[string]map[string]struct{}    // userID -> saved opportunity ids
}

// NewResultStore creates an empty result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string][]*models.Results),
		saved:   make(map[string]map[models.OpportunityType]int),
		views:   make(map[string]map[string]int),
		savedID: make(map[string]map[string]struct{}),
	}
}

// SaveResult persists one discovery run, newest first.
func (s *ResultStore) SaveResult(_ context.Context, userID string, results *models.Results) error {
	if userID == "" || results == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[userID] = append([]*models.Results{results}, s.results[userID]...)
	return nil
}

// ResultsForUser returns up to limit recent results, newest first.
func (s *ResultStore) ResultsForUser(_ context.Context, userID string, limit int) ([]*models.Results, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.results[userID]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	out := make([]*models.Results, len(results))
	copy(out, results)
	return out, nil
}

// PreviousOpportunityIDs collects every id the user has been shown.
func (s *ResultStore) PreviousOpportunityIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{})
	for _, res := range s.results[userID] {
		for i := range res.Opportunities {
			ids[res.Opportunities[i].ID] = struct{}{}
		}
	}
	return ids, nil
}

// FindOpportunity scans all persisted results for the given id.
func (s *ResultStore) FindOpportunity(_ context.Context, id string) (*models.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, userResults := range s.results {
		for _, res := range userResults {
			for i := range res.Opportunities {
				if res.Opportunities[i].ID == id {
					op := res.Opportunities[i].Clone()
					return &op, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("opportunity %s: %w", id, storage.ErrNotFound)
}

// History assembles the user's interaction history.
func (s *ResultStore) History(_ context.Context, userID string) (*models.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hist := &models.History{
		SavedByCategory:  make(map[models.OpportunityType]int, len(s.saved[userID])),
		ViewedNeverSaved: make(map[string]int),
		SeenIDs:          make(map[string]struct{}),
	}
	for opType, n := range s.saved[userID] {
		hist.SavedByCategory[opType] = n
	}
	for id, n := range s.views[userID] {
		if _, wasSaved := s.savedID[userID][id]; !wasSaved {
			hist.ViewedNeverSaved[id] = n
		}
	}
	for _, res := range s.results[userID] {
		for i := range res.Opportunities {
			hist.SeenIDs[res.Opportunities[i].ID] = struct{}{}
		}
	}
	return hist, nil
}

// RecordSave counts a save under the opportunity's type.
func (s *ResultStore) RecordSave(_ context.Context, userID string, op models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved[userID] == nil {
		s.saved[userID] = make(map[models.OpportunityType]int)
	}
	s.saved[userID][op.Type]++

	if s.savedID[userID] == nil {
		s.savedID[userID] = make(map[string]struct{})
	}
	s.savedID[userID][op.ID] = struct{}{}
	return nil
}

// RecordView counts a view of an opportunity.
func (s *ResultStore) RecordView(_ context.Context, userID, opportunityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views[userID] == nil {
		s.views[userID] = make(map[string]int)
	}
	s.views[userID][opportunityID]++
	return nil
}

// UserStore is an in-memory storage.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

// User retrieves a user by id.
func (s *UserStore) User(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return user, nil
}

// SaveUser creates or updates a user record.
func (s *UserStore) SaveUser(_ context.Context, user models.User) error {
	if user.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

// AllUsers returns every stored user.
func (s *UserStore) AllUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

var (
	_ storage.ResultStore = (*ResultStore)(nil)
	_ storage.UserStore   = (*UserStore)(nil)
)
