// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/storage"
)

func testResults(requestID string, opIDs ...string) *models.Results {
	ops := make([]models.Opportunity, len(opIDs))
	for i, id := range opIDs {
		ops[i] = models.Opportunity{ID: id, Title: "Op " + id, Type: models.TypeFreelance}
	}
	return &models.Results{
		RequestID:     requestID,
		UserID:        "u1",
		Opportunities: ops,
		CreatedAt:     time.Now(),
	}
}

func TestResultStoreSaveAndList(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	if err := s.SaveResult(ctx, "u1", testResults("r1", "a")); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := s.SaveResult(ctx, "u1", testResults("r2", "b")); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	results, err := s.ResultsForUser(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("ResultsForUser() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].RequestID != "r2" {
		t.Errorf("results[0].RequestID = %q, want newest first", results[0].RequestID)
	}

	limited, _ := s.ResultsForUser(ctx, "u1", 1)
	if len(limited) != 1 {
		t.Errorf("len(limited) = %d, want 1", len(limited))
	}
}

func TestResultStoreRejectsInvalidInput(t *testing.T) {
	s := NewResultStore()

	if err := s.SaveResult(context.Background(), "", testResults("r1")); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("SaveResult(empty user) error = %v, want ErrInvalidInput", err)
	}
	if err := s.SaveResult(context.Background(), "u1", nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("SaveResult(nil results) error = %v, want ErrInvalidInput", err)
	}
}

func TestPreviousOpportunityIDs(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	s.SaveResult(ctx, "u1", testResults("r1", "a", "b")) //nolint:errcheck
	s.SaveResult(ctx, "u1", testResults("r2", "b", "c")) //nolint:errcheck

	ids, err := s.PreviousOpportunityIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("PreviousOpportunityIDs() error = %v", err)
	}
	for _, want := range []string{"a", "b", "c"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("id %q missing", want)
		}
	}
	if len(ids) != 3 {
		t.Errorf("len(ids) = %d, want 3", len(ids))
	}
}

func TestFindOpportunity(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	s.SaveResult(ctx, "u1", testResults("r1", "a", "b")) //nolint:errcheck

	op, err := s.FindOpportunity(ctx, "b")
	if err != nil {
		t.Fatalf("FindOpportunity() error = %v", err)
	}
	if op.ID != "b" {
		t.Errorf("op.ID = %q, want b", op.ID)
	}

	if _, err := s.FindOpportunity(ctx, "zzz"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("FindOpportunity(miss) error = %v, want ErrNotFound", err)
	}
}

func TestHistoryAssembly(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	s.SaveResult(ctx, "u1", testResults("r1", "a", "b")) //nolint:errcheck
	s.RecordSave(ctx, "u1", models.Opportunity{ID: "a", Type: models.TypeFreelance}) //nolint:errcheck
	s.RecordView(ctx, "u1", "a") //nolint:errcheck
	s.RecordView(ctx, "u1", "b") //nolint:errcheck
	s.RecordView(ctx, "u1", "b") //nolint:errcheck

	hist, err := s.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if hist.SavedByCategory[models.TypeFreelance] != 1 {
		t.Errorf("SavedByCategory[freelance] = %d, want 1", hist.SavedByCategory[models.TypeFreelance])
	}
	if hist.ViewedNeverSaved["b"] != 2 {
		t.Errorf("ViewedNeverSaved[b] = %d, want 2", hist.ViewedNeverSaved["b"])
	}
	if _, ok := hist.ViewedNeverSaved["a"]; ok {
		t.Error("saved opportunity a counted as viewed-never-saved")
	}
	if _, ok := hist.SeenIDs["a"]; !ok {
		t.Error("SeenIDs missing id a")
	}
}

func TestHistoryEmptyUser(t *testing.T) {
	s := NewResultStore()

	hist, err := s.History(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(hist.SavedByCategory) != 0 || len(hist.ViewedNeverSaved) != 0 || len(hist.SeenIDs) != 0 {
		t.Errorf("empty user history not empty: %+v", hist)
	}
}

func TestUserStore(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	if _, err := s.User(ctx, "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("User(miss) error = %v, want ErrNotFound", err)
	}

	user := models.User{ID: "u1", Username: "sam", Skills: []string{"writing"}, Discoverable: true}
	if err := s.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	got, err := s.User(ctx, "u1")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if got.Username != "sam" {
		t.Errorf("Username = %q, want sam", got.Username)
	}

	s.SaveUser(ctx, models.User{ID: "u2", Username: "kim"}) //nolint:errcheck
	all, err := s.AllUsers(ctx)
	if err != nil {
		t.Fatalf("AllUsers() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}
}

func TestUserStoreRejectsEmptyID(t *testing.T) {
	s := NewUserStore()

	if err := s.SaveUser(context.Background(), models.User{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("SaveUser(empty id) error = %v, want ErrInvalidInput", err)
	}
}
