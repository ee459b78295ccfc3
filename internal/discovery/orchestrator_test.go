// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/ai"
	"github.com/hustlemap/hustlemap/internal/market"
	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/opcache"
	"github.com/hustlemap/hustlemap/internal/scoring"
	"github.com/hustlemap/hustlemap/internal/skills"
	"github.com/hustlemap/hustlemap/internal/sources"
	"github.com/hustlemap/hustlemap/internal/storage"
	"github.com/hustlemap/hustlemap/internal/storage/memory"
)

// fixedSource returns a static set of opportunities with fresh ids per
// call.
type fixedSource struct {
	id  string
	ops []models.Opportunity
	err error
}

func (f *fixedSource) ID() string   { return f.id }
func (f *fixedSource) Name() string { return "Fixed " + f.id }

func (f *fixedSource) Opportunities(_ context.Context, _ []string, _ models.Preferences) ([]models.Opportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Opportunity, len(f.ops))
	for i, op := range f.ops {
		op.ID = models.NewID(f.id)
		op.SourceID = f.id
		out[i] = op
	}
	return out, nil
}

// failingSaves wraps a result store with a failing SaveResult.
type failingSaves struct {
	storage.ResultStore
}

func (f *failingSaves) SaveResult(context.Context, string, *models.Results) error {
	return errors.New("disk full")
}

type testHarness struct {
	orch    *Orchestrator
	users   *memory.UserStore
	results storage.ResultStore
	cache   *opcache.Cache
}

func newHarness(t *testing.T, results storage.ResultStore, srcs ...sources.Source) *testHarness {
	t.Helper()

	logger := zerolog.Nop()
	if results == nil {
		results = memory.NewResultStore()
	}
	users := memory.NewUserStore()

	registry := sources.NewRegistry()
	for _, s := range srcs {
		registry.Register(s)
	}

	cache := opcache.New(opcache.NewMemoryStore(), opcache.DefaultTTL, logger)
	marketSvc := market.NewService(logger)
	resolver := opcache.NewResolver(cache, NewResultHistoryFinder(results), registry, marketSvc, logger)

	orch := NewOrchestrator(Config{
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

	return &testHarness{orch: orch, users: users, results: results, cache: cache}
}

func seedUser(t *testing.T, h *testHarness, id string, skillList ...string) {
	t.Helper()
	err := h.users.SaveUser(context.Background(), models.User{
		ID: id, Username: id, Skills: skillList, Discoverable: true,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
}

func writerPrefs() models.Preferences {
	return models.Preferences{
		Skills:       []string{"writing"},
		TimePerWeek:  "10",
		RiskAppetite: models.TierLow,
		IncomeGoal:   1000,
	}
}

func TestDiscoverEndToEnd(t *testing.T) {
	contentOp := models.Opportunity{
		Title:          "Start a Writing Newsletter",
		Type:           models.TypeContent,
		RequiredSkills: []string{"writing"},
		Income:         models.IncomeRange{Min: 1200, Max: 1200, Timeframe: "month"},
		TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 10},
		EntryBarrier:   models.TierLow,
	}
	h := newHarness(t, nil, &fixedSource{id: "test-content", ops: []models.Opportunity{contentOp}})
	seedUser(t, h, "u1", "writing")

	results, err := h.orch.Discover(context.Background(), "u1", writerPrefs())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var found *models.Opportunity
	for i := range results.Opportunities {
		if results.Opportunities[i].Title == contentOp.Title {
			found = &results.Opportunities[i]
		}
	}
	if found == nil {
		t.Fatal("content opportunity missing from results")
	}
	if found.MatchScore <= 0.5 {
		t.Errorf("MatchScore = %f, want upper half of [0,1]", found.MatchScore)
	}

	hasSkillFactor := false
	for _, f := range found.MatchFactors {
		if f.Name == "skill_match" {
			hasSkillFactor = true
		}
	}
	if !hasSkillFactor {
		t.Errorf("MatchFactors = %+v, want a skill_match factor", found.MatchFactors)
	}

	if results.RequestID == "" {
		t.Error("RequestID empty")
	}
	if results.Strategy != "classic" {
		t.Errorf("Strategy = %q, want classic", results.Strategy)
	}
	if results.SourceStats["test-content"].Count != 1 {
		t.Errorf("SourceStats = %+v, want one contribution from test-content", results.SourceStats)
	}
}

func TestDiscoverUnknownUserFatal(t *testing.T) {
	h := newHarness(t, nil, &fixedSource{id: "test-content"})

	if _, err := h.orch.Discover(context.Background(), "ghost", writerPrefs()); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Discover(unknown user) error = %v, want ErrNotFound", err)
	}
}

func TestDiscoverSourceFailureIsolated(t *testing.T) {
	good := &fixedSource{id: "good", ops: []models.Opportunity{{
		Title:          "Survivor",
		Type:           models.TypeFreelance,
		RequiredSkills: []string{"writing"},
		Income:         models.IncomeRange{Min: 800, Max: 1200, Timeframe: "month"},
		TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 8},
		EntryBarrier:   models.TierLow,
	}}}
	bad := &fixedSource{id: "bad", err: errors.New("upstream down")}

	h := newHarness(t, nil, good, bad)
	seedUser(t, h, "u1", "writing")

	results, err := h.orch.Discover(context.Background(), "u1", writerPrefs())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(results.Opportunities) != 1 {
		t.Errorf("len(Opportunities) = %d, want 1 from the healthy source", len(results.Opportunities))
	}
	if results.SourceStats["bad"].Err == "" {
		t.Error("failing source's error not recorded in stats")
	}
}

// pinnedSource always returns the same opportunity with a fixed id.
type pinnedSource struct {
	id     string
	op     models.Opportunity
	pinned string
}

func (p *pinnedSource) ID() string   { return p.id }
func (p *pinnedSource) Name() string { return "Pinned " + p.id }

func (p *pinnedSource) Opportunities(context.Context, []string, models.Preferences) ([]models.Opportunity, error) {
	op := p.op
	op.ID = p.pinned
	op.SourceID = p.id
	return []models.Opportunity{op}, nil
}

func TestDiscoverSeenIDsNeverReappear(t *testing.T) {
	src := &pinnedSource{
		id:     "repeat",
		pinned: models.NewID("repeat"),
		op: models.Opportunity{
			Title:          "Repeatable",
			Type:           models.TypeFreelance,
			RequiredSkills: []string{"writing"},
			Income:         models.IncomeRange{Min: 800, Max: 1200, Timeframe: "month"},
			TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 8},
			EntryBarrier:   models.TierLow,
		},
	}
	h := newHarness(t, nil, src)
	seedUser(t, h, "u1", "writing")

	first, err := h.orch.Discover(context.Background(), "u1", writerPrefs())
	if err != nil {
		t.Fatalf("first Discover() error = %v", err)
	}
	if len(first.Opportunities) != 1 {
		t.Fatalf("first run returned %d opportunities", len(first.Opportunities))
	}

	second, err := h.orch.Discover(context.Background(), "u1", writerPrefs())
	if err != nil {
		t.Fatalf("second Discover() error = %v", err)
	}
	for i := range second.Opportunities {
		if second.Opportunities[i].ID == src.pinned {
			t.Error("previously seen id reappeared in a fresh result set")
		}
	}
}

func TestDiscoverPersistFailureSwallowed(t *testing.T) {
	h := newHarness(t, &failingSaves{ResultStore: memory.NewResultStore()}, &fixedSource{
		id: "src",
		ops: []models.Opportunity{{
			Title:          "Still Returned",
			Type:           models.TypeContent,
			RequiredSkills: []string{"writing"},
			Income:         models.IncomeRange{Min: 800, Max: 1200, Timeframe: "month"},
			TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 8},
			EntryBarrier:   models.TierLow,
		}},
	})
	seedUser(t, h, "u1", "writing")

	results, err := h.orch.Discover(context.Background(), "u1", writerPrefs())
	if err != nil {
		t.Fatalf("Discover() error = %v, want persist failure swallowed", err)
	}
	if len(results.Opportunities) != 1 {
		t.Errorf("len(Opportunities) = %d, want 1", len(results.Opportunities))
	}
}

func TestDiscoverSkillGapEnrichment(t *testing.T) {
	h := newHarness(t, nil, &fixedSource{id: "src", ops: []models.Opportunity{{
		Title:            "Needs SEO",
		Type:             models.TypeContent,
		RequiredSkills:   []string{"writing", "seo"},
		Income:           models.IncomeRange{Min: 800, Max: 1200, Timeframe: "month"},
		TimeRequired:     models.TimeRange{MinHours: 5, MaxHours: 8},
		EntryBarrier:     models.TierLow,
	}}})
	seedUser(t, h, "u1", "writing")

	prefs := writerPrefs()
	prefs.Flags.UseSkillGap = true

	results, err := h.orch.Discover(context.Background(), "u1", prefs)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(results.Opportunities) != 1 {
		t.Fatalf("len(Opportunities) = %d, want 1", len(results.Opportunities))
	}

	op := results.Opportunities[0]
	if op.SkillGap == nil {
		t.Fatal("SkillGap report missing with flag enabled")
	}
	if op.SkillGapDays <= 0 {
		t.Errorf("SkillGapDays = %d, want > 0 for a missing skill", op.SkillGapDays)
	}
}

func TestDiscoverEnhancedUsesFallbackSupplements(t *testing.T) {
	h := newHarness(t, nil, &fixedSource{id: "src", ops: []models.Opportunity{{
		Title:          "Lone Candidate",
		Type:           models.TypeContent,
		RequiredSkills: []string{"writing"},
		Income:         models.IncomeRange{Min: 800, Max: 1200, Timeframe: "month"},
		TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 8},
		EntryBarrier:   models.TierLow,
	}}})
	seedUser(t, h, "u1", "writing")

	prefs := writerPrefs()
	prefs.Flags.UseEnhanced = true

	results, err := h.orch.Discover(context.Background(), "u1", prefs)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(results.Opportunities) <= 1 {
		t.Errorf("len(Opportunities) = %d, want supplements added to a thin pool", len(results.Opportunities))
	}

	supplemented := false
	for i := range results.Opportunities {
		if results.Opportunities[i].SourceID == ai.FallbackSourceID {
			supplemented = true

			// Supplements must be resolvable by id afterwards.
			if _, ok := h.orch.OpportunityByID(context.Background(), results.Opportunities[i].ID); !ok {
				t.Error("supplement id not resolvable")
			}
		}
	}
	if !supplemented {
		t.Error("no fallback supplements in the result set")
	}
}

func TestDiscoverSimilarUsers(t *testing.T) {
	h := newHarness(t, nil, &fixedSource{id: "src", ops: []models.Opportunity{{
		Title:          "Anything",
		Type:           models.TypeContent,
		RequiredSkills: []string{"writing"},
		Income:         models.IncomeRange{Min: 800, Max: 1200, Timeframe: "month"},
		TimeRequired:   models.TimeRange{MinHours: 5, MaxHours: 8},
		EntryBarrier:   models.TierLow,
	}}})
	seedUser(t, h, "u1", "writing")
	seedUser(t, h, "u2", "writing", "seo")

	prefs := writerPrefs()
	prefs.Flags.Discoverable = true

	results, err := h.orch.Discover(context.Background(), "u1", prefs)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(results.SimilarUsers) != 1 || results.SimilarUsers[0].UserID != "u2" {
		t.Errorf("SimilarUsers = %+v, want u2", results.SimilarUsers)
	}
}

func TestOpportunityByIDFallsBackToSynthesis(t *testing.T) {
	h := newHarness(t, nil)

	op, ok := h.orch.OpportunityByID(context.Background(), "marketplace-12345-deadbeef")
	if !ok {
		t.Fatal("OpportunityByID() = not found, want synthesized placeholder")
	}
	if !op.Synthesized {
		t.Error("placeholder not marked synthesized")
	}
}

func TestSourcesListing(t *testing.T) {
	h := newHarness(t, nil, &fixedSource{id: "alpha"}, &fixedSource{id: "beta"})

	infos := h.orch.Sources()
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	if infos[0].ID != "alpha" || infos[1].ID != "beta" {
		t.Errorf("infos = %+v, want registration order", infos)
	}
}
