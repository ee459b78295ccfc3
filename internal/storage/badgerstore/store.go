// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package badgerstore provides BadgerDB-backed storage implementations
// for durable deployments with persistence across restarts.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/storage"
)

// Key prefixes for BadgerDB storage.
const (
	resultKeyPrefix  = "result:"
	historyKeyPrefix = "history:"
	userKeyPrefix    = "user:"
)

// interactions is the persisted per-user interaction record backing
// History.
type interactions struct {
	SavedByCategory map[models.OpportunityType]int `json:"saved_by_category"`
	Views           map[string]int                 `json:"views"`
	SavedIDs        map[string]struct{}            `json:"saved_ids"`
}

func newInteractions() *interactions {
	return &interactions{
		SavedByCategory: make(map[models.OpportunityType]int),
		Views:           make(map[string]int),
		SavedIDs:        make(map[string]struct{}),
	}
}

// ResultStore implements storage.ResultStore on BadgerDB.
type ResultStore struct {
	db *badger.DB
}

// NewResultStore creates a BadgerDB-backed result store.
func NewResultStore(db *badger.DB) *ResultStore {
	return &ResultStore{db: db}
}

// SaveResult persists one discovery run.
func (s *ResultStore) SaveResult(_ context.Context, userID string, results *models.Results) error {
	if userID == "" || results == nil {
		return storage.ErrInvalidInput
	}

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%s:%020d:%s",
		resultKeyPrefix, userID, results.CreatedAt.UnixNano(), results.RequestID))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// ResultsForUser returns up to limit recent results, newest first.
func (s *ResultStore) ResultsForUser(_ context.Context, userID string, limit int) ([]*models.Results, error) {
	var out []*models.Results

	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanUser(txn, userID, func(res *models.Results) bool {
			out = append(out, res)
			return true
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PreviousOpportunityIDs collects every id the user has been shown.
func (s *ResultStore) PreviousOpportunityIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanUser(txn, userID, func(res *models.Results) bool {
			for i := range res.Opportunities {
				ids[res.Opportunities[i].ID] = struct{}{}
			}
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindOpportunity scans all persisted results for the given id.
func (s *ResultStore) FindOpportunity(_ context.Context, id string) (*models.Opportunity, error) {
	var found *models.Opportunity

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(resultKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var res models.Results
				if err := json.Unmarshal(val, &res); err != nil {
					return fmt.Errorf("unmarshal results: %w", err)
				}
				for i := range res.Opportunities {
					if res.Opportunities[i].ID == id {
						op := res.Opportunities[i].Clone()
						found = &op
						return nil
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if found != nil {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("opportunity %s: %w", id, storage.ErrNotFound)
	}
	return found, nil
}

// History assembles the user's interaction history.
func (s *ResultStore) History(ctx context.Context, userID string) (*models.History, error) {
	inter, err := s.loadInteractions(userID)
	if err != nil {
		return nil, err
	}

	hist := &models.History{
		SavedByCategory:  inter.SavedByCategory,
		ViewedNeverSaved: make(map[string]int),
		SeenIDs:          make(map[string]struct{}),
	}
	for id, n := range inter.Views {
		if _, wasSaved := inter.SavedIDs[id]; !wasSaved {
			hist.ViewedNeverSaved[id] = n
		}
	}

	seen, err := s.PreviousOpportunityIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	hist.SeenIDs = seen
	return hist, nil
}

// RecordSave counts a save under the opportunity's type.
func (s *ResultStore) RecordSave(_ context.Context, userID string, op models.Opportunity) error {
	return s.updateInteractions(userID, func(inter *interactions) {
		inter.SavedByCategory[op.Type]++
		inter.SavedIDs[op.ID] = struct{}{}
	})
}

// RecordView counts a view of an opportunity.
func (s *ResultStore) RecordView(_ context.Context, userID, opportunityID string) error {
	return s.updateInteractions(userID, func(inter *interactions) {
		inter.Views[opportunityID]++
	})
}

// scanUser iterates a user's persisted results. visit returns false to
// stop early.
func (s *ResultStore) scanUser(txn *badger.Txn, userID string, visit func(*models.Results) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(resultKeyPrefix + userID + ":")
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		stop := false
		err := it.Item().Value(func(val []byte) error {
			var res models.Results
			if err := json.Unmarshal(val, &res); err != nil {
				return fmt.Errorf("unmarshal results: %w", err)
			}
			stop = !visit(&res)
			return nil
		})
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// loadInteractions reads a user's interaction record, empty on miss.
func (s *ResultStore) loadInteractions(userID string) (*interactions, error) {
	inter := newInteractions()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(historyKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get interactions: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, inter)
		})
	})
	if err != nil {
		return nil, err
	}
	return inter, nil
}

// updateInteractions applies a read-modify-write to the interaction
// record.
func (s *ResultStore) updateInteractions(userID string, apply func(*interactions)) error {
	if userID == "" {
		return storage.ErrInvalidInput
	}

	return s.db.Update(func(txn *badger.Txn) error {
		inter := newInteractions()

		item, err := txn.Get([]byte(historyKeyPrefix + userID))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return fmt.Errorf("get interactions: %w", err)
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, inter)
			}); err != nil {
				return err
			}
		}

		apply(inter)

		data, err := json.Marshal(inter)
		if err != nil {
			return fmt.Errorf("marshal interactions: %w", err)
		}
		return txn.Set([]byte(historyKeyPrefix+userID), data)
	})
}

// UserStore implements storage.UserStore on BadgerDB.
type UserStore struct {
	db *badger.DB
}

// NewUserStore creates a BadgerDB-backed user store.
func NewUserStore(db *badger.DB) *UserStore {
	return &UserStore{db: db}
}

// User retrieves a user by id.
func (s *UserStore) User(_ context.Context, id string) (models.User, error) {
	var user models.User

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SaveUser creates or updates a user record.
func (s *UserStore) SaveUser(_ context.Context, user models.User) error {
	if user.ID == "" || strings.Contains(user.ID, ":") {
		return storage.ErrInvalidInput
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKeyPrefix+user.ID), data)
	})
}

// AllUsers returns every stored user.
func (s *UserStore) AllUsers(_ context.Context) ([]models.User, error) {
	var users []models.User

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var user models.User
				if err := json.Unmarshal(val, &user); err != nil {
					return fmt.Errorf("unmarshal user: %w", err)
				}
				users = append(users, user)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Open opens a Badger database at dir with logging disabled.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", dir, err)
	}
	return db, nil
}

var (
	_ storage.ResultStore = (*ResultStore)(nil)
	_ storage.UserStore   = (*UserStore)(nil)
)
