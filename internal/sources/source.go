// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package sources defines the pluggable opportunity source interface,
// the source registry, and the concurrent aggregator that fans out to
// every registered source under independent timeouts.
package sources

import (
	"context"
	"fmt"
	"sync"

	"github.com/hustlemap/hustlemap/internal/models"
)

// Source is a pluggable provider of raw opportunities. Implementations
// are free to call out to external systems and may fail or time out
// without affecting sibling sources.
type Source interface {
	// ID returns the stable source identifier used in opportunity ids.
	ID() string

	// Name returns the human-readable source name.
	Name() string

	// Opportunities returns raw opportunities matched to the given
	// skills and preferences.
	Opportunities(ctx context.Context, skills []string, prefs models.Preferences) ([]models.Opportunity, error)
}

// Registry holds registered sources. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds a source. Re-registering an id replaces the previous
// source in place.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[s.ID()]; !exists {
		r.order = append(r.order, s.ID())
	}
	r.sources[s.ID()] = s
}

// Get returns the source with the given id.
func (r *Registry) Get(id string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[id]
	return s, ok
}

// All returns the registered sources in registration order.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sources[id])
	}
	return out
}

// FromSource queries a single source directly, bypassing the pipeline.
// Used by source-level inspection endpoints. A non-positive limit
// returns everything the source produced.
func (r *Registry) FromSource(ctx context.Context, sourceID string, limit int, skills []string) ([]models.Opportunity, error) {
	s, ok := r.Get(sourceID)
	if !ok {
		return nil, fmt.Errorf("source %q not registered", sourceID)
	}

	ops, err := s.Opportunities(ctx, skills, models.Preferences{Skills: skills})
	if err != nil {
		return nil, fmt.Errorf("query source %q: %w", sourceID, err)
	}
	if limit > 0 && len(ops) > limit {
		ops = ops[:limit]
	}
	return ops, nil
}

// Requery re-runs a source query on behalf of the cache fallback chain.
// Unknown source ids resolve to an error rather than a panic so the
// chain can continue to its synthesis stage.
func (r *Registry) Requery(ctx context.Context, sourceID string, skills []string) ([]models.Opportunity, error) {
	return r.FromSource(ctx, sourceID, 0, skills)
}
