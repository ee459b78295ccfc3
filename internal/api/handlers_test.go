// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/ai"
	"github.com/hustlemap/hustlemap/internal/discovery"
	"github.com/hustlemap/hustlemap/internal/market"
	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/opcache"
	"github.com/hustlemap/hustlemap/internal/scoring"
	"github.com/hustlemap/hustlemap/internal/skills"
	"github.com/hustlemap/hustlemap/internal/sources"
	"github.com/hustlemap/hustlemap/internal/storage/memory"
)

// staticSource serves one canned opportunity with a fresh id per call.
type staticSource struct {
	id string
	op models.Opportunity
}

func (s *staticSource) ID() string   { return s.id }
func (s *staticSource) Name() string { return "Static " + s.id }

func (s *staticSource) Opportunities(context.Context, []string, models.Preferences) ([]models.Opportunity, error) {
	op := s.op
	op.ID = models.NewID(s.id)
	op.SourceID = s.id
	return []models.Opportunity{op}, nil
}

func writingOp() models.Opportunity {
	return models.Opportunity{
		Title:          "Freelance Blog Writing",
		Description:    "Write long-form articles for SaaS companies on a retainer basis.",
		Type:               models.TypeContent,
		RequiredSkills:     []string{"writing"},
		Income:             models.IncomeRange{Min: 500, Max: 1500, Timeframe: "monthly"},
		TimeRequired:       models.TimeRange{MinHours: 5, MaxHours: 10},
		EntryBarrier:       models.TierLow,
		TimeToFirstRevenue: "2-4 weeks",
	}
}

func newTestRouter(t *testing.T) (http.Handler, *memory.UserStore, *memory.ResultStore) {
	t.Helper()

	logger := zerolog.Nop()
	results := memory.NewResultStore()
	users := memory.NewUserStore()

	registry := sources.NewRegistry()
	registry.Register(&staticSource{id: "marketplace", op: writingOp()})

	cache := opcache.New(opcache.NewMemoryStore(), opcache.DefaultTTL, logger)
	marketSvc := market.NewService(logger)
	resolver := opcache.NewResolver(cache, discovery.NewResultHistoryFinder(results), registry, marketSvc, logger)

	orch := discovery.NewOrchestrator(discovery.Config{
		Registry:   registry,
		Aggregator: sources.NewAggregator(registry, cache, time.Second, logger),
		Engine: scoring.NewEngine(
			scoring.NewClassic([]string{ai.GeneratedSourceID, ai.FallbackSourceID}),
			scoring.NewFeatureVector(scoring.DefaultFeatureWeights()),
			logger,
		),
		Analyzer: skills.NewAnalyzer(skills.NewDefaultGraph()),
		Enhancer: ai.NewService(nil, logger, nil),
		Market:   marketSvc,
		Cache:    cache,
		Resolver: resolver,
		Results:  results,
		Users:    users,
	}, logger)

	handler := NewHandler(orch, results, users)
	router := NewRouter(handler, RouterConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   0,
		RateLimitWindow: time.Minute,
	})
	return router, users, results
}

func seedUser(t *testing.T, users *memory.UserStore, id string) {
	t.Helper()
	err := users.SaveUser(context.Background(), models.User{
		ID: id, Username: id, Skills: []string{"writing"}, Discoverable: true,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v (body %s)", err, rec.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("response not successful: %+v", envelope.Error)
	}
	if dst != nil {
		if err := json.Unmarshal(envelope.Data, dst); err != nil {
			t.Fatalf("decoding data: %v", err)
		}
	}
}

func TestDiscoverEndpoint(t *testing.T) {
	router, users, _ := newTestRouter(t)
	seedUser(t, users, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/discover", DiscoverRequest{
		UserID:       "alice",
		Skills:       []string{"writing"},
		TimePerWeek:  "10",
		RiskAppetite: "low",
		IncomeGoal:   1000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	var results models.Results
	decodeData(t, rec, &results)
	if results.UserID != "alice" {
		t.Errorf("user = %q", results.UserID)
	}
	if len(results.Opportunities) == 0 {
		t.Fatal("no opportunities returned")
	}
	if results.Opportunities[0].MatchScore <= 0 {
		t.Error("opportunities not scored")
	}
	if results.Strategy != "classic" {
		t.Errorf("strategy = %q, want classic", results.Strategy)
	}
}

func TestDiscoverUnknownUser(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/discover", DiscoverRequest{UserID: "ghost"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDiscoverValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		name string
		body DiscoverRequest
	}{
		{"missing user", DiscoverRequest{}},
		{"bad risk", DiscoverRequest{UserID: "u", RiskAppetite: "extreme"}},
		{"negative goal", DiscoverRequest{UserID: "u", IncomeGoal: -5}},
		{"bad work pref", DiscoverRequest{UserID: "u", WorkPreference: "hybrid-ish"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/discover", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDiscoverMalformedBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discover", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOpportunityByIDAfterDiscovery(t *testing.T) {
	router, users, _ := newTestRouter(t)
	seedUser(t, users, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/discover", DiscoverRequest{UserID: "alice"})
	var results models.Results
	decodeData(t, rec, &results)
	id := results.Opportunities[0].ID

	rec = doJSON(t, router, http.MethodGet, "/api/v1/opportunities/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var op models.Opportunity
	decodeData(t, rec, &op)
	if op.ID != id {
		t.Errorf("id = %q, want %q", op.ID, id)
	}
}

func TestOpportunityByIDSynthesized(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// Never cached, but the id encodes a registered source, so the
	// final resolution stage synthesizes a representative entry.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/opportunities/marketplace-12345-deadbeef", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestOpportunityByIDUnknown(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/opportunities/nosuchsource-1-2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSourcesEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/sources", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var infos []discovery.SourceInfo
	decodeData(t, rec, &infos)
	if len(infos) != 1 || infos[0].ID != "marketplace" {
		t.Errorf("sources = %+v", infos)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sources/marketplace/opportunities?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var ops []models.Opportunity
	decodeData(t, rec, &ops)
	if len(ops) != 1 {
		t.Errorf("got %d opportunities", len(ops))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sources/unknown/opportunities", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown source status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sources/marketplace/opportunities?limit=999", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized limit status = %d, want 400", rec.Code)
	}
}

func TestUserLifecycle(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/users/bob", UpsertUserRequest{
		Username: "Bob", Skills: []string{"design"}, Discoverable: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("upsert status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/bob", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var user models.User
	decodeData(t, rec, &user)
	if user.Username != "Bob" || len(user.Skills) != 1 {
		t.Errorf("user = %+v", user)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/nobody", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing user status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/users/bad", UpsertUserRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid upsert status = %d, want 400", rec.Code)
	}
}

func TestUserResultsAndInteractions(t *testing.T) {
	router, users, _ := newTestRouter(t)
	seedUser(t, users, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/discover", DiscoverRequest{UserID: "alice"})
	var results models.Results
	decodeData(t, rec, &results)
	opID := results.Opportunities[0].ID

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/alice/results", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results status = %d", rec.Code)
	}
	var runs []models.Results
	decodeData(t, rec, &runs)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/interactions", InteractionRequest{
		OpportunityID: opID, Action: "save",
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/interactions", InteractionRequest{
		OpportunityID: opID, Action: "view",
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("view status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/interactions", InteractionRequest{
		OpportunityID: opID, Action: "dismiss",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad action status = %d, want 400", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limited := NewRouter(NewHandler(nil, memory.NewResultStore(), memory.NewUserStore()), RouterConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	})

	var last int
	for range 3 {
		rec := doJSON(t, limited, http.MethodGet, "/api/v1/users/nobody", nil)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}
}
