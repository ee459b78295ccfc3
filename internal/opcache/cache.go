// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package opcache implements the identifier-keyed opportunity cache
// with time-based eviction, plus the multi-stage fallback chain that
// resolves an opportunity id to something coherent even after the
// cached entry has been evicted.
package opcache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/metrics"
	"github.com/hustlemap/hustlemap/internal/models"
)

// Defaults for entry lifetime and sweep cadence.
const (
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = 15 * time.Minute
)

// Entry pairs an opportunity with its insertion timestamp.
type Entry struct {
	Opportunity models.Opportunity
	InsertedAt  time.Time
}

// Store is the cache's storage backend. The in-memory store is the
// default; a Redis-backed store is available for multi-instance
// deployments.
type Store interface {
	// Put inserts or replaces an entry.
	Put(e Entry)

	// Get returns the entry for an id.
	Get(id string) (Entry, bool)

	// DeleteOlderThan removes entries inserted before the cutoff and
	// returns how many were removed.
	DeleteOlderThan(cutoff time.Time) int

	// Clear removes all entries.
	Clear()

	// Len returns the number of live entries.
	Len() int
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// Cache is the identifier-keyed opportunity cache. The cache
// exclusively owns its entries; Get hands out clones, never references
// into the backing store. Concurrent readers are supported; the sweep
// serializes against inserts through the store's own locking.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger

	mu        sync.Mutex
	hits      int64
	misses    int64
	evictions int64

	// now is injectable for TTL tests.
	now func() time.Time
}

// New creates a cache over the given store. A nil store gets the
// in-memory default; a non-positive TTL gets DefaultTTL.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store Store, ttl time.Duration, logger zerolog.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "opcache").Logger(),
		now:    time.Now,
	}
}

// Put stores an opportunity under its id, stamping the insertion time.
func (c *Cache) Put(op models.Opportunity) {
	if op.ID == "" {
		return
	}
	c.store.Put(Entry{Opportunity: op.Clone(), InsertedAt: c.now()})
}

// Get returns a copy of the cached opportunity. Entries past their TTL
// are treated as absent even before the next sweep removes them.
func (c *Cache) Get(id string) (models.Opportunity, bool) {
	e, ok := c.store.Get(id)
	if !ok || c.now().Sub(e.InsertedAt) > c.ttl {
		c.count(&c.misses)
		metrics.CacheMisses.Inc()
		return models.Opportunity{}, false
	}
	c.count(&c.hits)
	metrics.CacheHits.Inc()
	return e.Opportunity.Clone(), true
}

// Sweep deletes entries older than the TTL. Invoked on the shared cron
// schedule; safe to call concurrently with Put and Get.
func (c *Cache) Sweep() int {
	removed := c.store.DeleteOlderThan(c.now().Add(-c.ttl))
	if removed > 0 {
		c.mu.Lock()
		c.evictions += int64(removed)
		c.mu.Unlock()
		metrics.CacheEvictions.Add(float64(removed))
		c.logger.Debug().Int("removed", removed).Msg("cache sweep evicted entries")
	}
	metrics.CacheSize.Set(float64(c.store.Len()))
	return removed
}

// Clear empties the cache; called at shutdown.
func (c *Cache) Clear() {
	c.store.Clear()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.store.Len(),
	}
}

func (c *Cache) count(field *int64) {
	c.mu.Lock()
	*field++
	c.mu.Unlock()
}

// memoryStore is the default mutex-guarded map store.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates the in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]Entry)}
}

func (m *memoryStore) Put(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Opportunity.ID] = e
}

func (m *memoryStore) Get(id string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	return e, ok
}

func (m *memoryStore) DeleteOlderThan(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if e.InsertedAt.Before(cutoff) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

func (m *memoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
}

func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
