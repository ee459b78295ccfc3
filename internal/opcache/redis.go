// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package opcache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces opportunity keys in a shared Redis database.
const keyPrefix = "opp:"

// opTimeout bounds individual Redis operations.
const opTimeout = 2 * time.Second

// redisStore keeps entries in Redis with the TTL enforced by Redis key
// expiry, so entries vanish on schedule even without a local sweep.
// Used when multiple instances should share one opportunity cache.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed store. The TTL is applied as key
// expiry on every Put.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "opcache-redis").Logger(),
	}
}

func (r *redisStore) Put(e Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payload, err := json.Marshal(e)
	if err != nil {
		r.logger.Warn().Err(err).Str("id", e.Opportunity.ID).Msg("marshal cache entry failed")
		return
	}
	if err := r.client.Set(ctx, keyPrefix+e.Opportunity.ID, payload, r.ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("id", e.Opportunity.ID).Msg("redis put failed")
	}
}

func (r *redisStore) Get(id string) (Entry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payload, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn().Err(err).Str("id", id).Msg("redis get failed")
		}
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		r.logger.Warn().Err(err).Str("id", id).Msg("unmarshal cache entry failed")
		return Entry{}, false
	}
	return e, true
}

// DeleteOlderThan is a no-op: Redis key expiry already evicts entries
// on schedule.
func (r *redisStore) DeleteOlderThan(time.Time) int { return 0 }

func (r *redisStore) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.Warn().Err(err).Msg("redis clear failed")
			return
		}
	}
}

func (r *redisStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	count := 0
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count
}
