// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package metrics provides Prometheus instrumentation for the
// discovery pipeline: run latency, per-source behavior, cache
// efficiency, and enhancement fallbacks.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Discovery pipeline metrics
	DiscoveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_run_duration_seconds",
			Help:    "Duration of full discovery pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DiscoveryRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_runs_total",
			Help: "Total discovery runs by outcome",
		},
		[]string{"outcome"}, // "ok", "unknown_user"
	)

	DiscoveryResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_result_size",
			Help:    "Number of opportunities in final result sets",
			Buckets: []float64{0, 5, 10, 15, 20, 30, 50},
		},
	)

	DiscoveryFilteredOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_filtered_out_total",
			Help: "Opportunities dropped by the preference filter",
		},
	)

	ScoringStrategyUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_scoring_strategy_total",
			Help: "Scoring strategy actually used per run, after any fallback",
		},
		[]string{"strategy"},
	)

	// Source fan-out metrics
	SourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_source_duration_seconds",
			Help:    "Per-source collection latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_source_failures_total",
			Help: "Source collection failures including timeouts",
		},
		[]string{"source"},
	)

	SourceOpportunities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_source_opportunities_total",
			Help: "Opportunities contributed per source",
		},
		[]string{"source"},
	)

	// Opportunity cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opportunity_cache_hits_total",
			Help: "Opportunity cache lookup hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opportunity_cache_misses_total",
			Help: "Opportunity cache lookup misses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opportunity_cache_evictions_total",
			Help: "Entries removed by TTL sweeps",
		},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "opportunity_cache_entries",
			Help: "Current number of cached opportunities",
		},
	)

	ResolveFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opportunity_resolve_fallbacks_total",
			Help: "Opportunity id resolutions by fallback stage",
		},
		[]string{"stage"}, // "cache", "history", "source", "synthesized", "miss"
	)

	// AI enhancement metrics
	AIFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_enhancement_fallbacks_total",
			Help: "Enhancement calls that degraded to the deterministic fallback",
		},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveDiscovery records one completed pipeline run.
func ObserveDiscovery(d time.Duration, resultSize int, strategy string) {
	DiscoveryDuration.Observe(d.Seconds())
	DiscoveryResultSize.Observe(float64(resultSize))
	ScoringStrategyUsed.WithLabelValues(strategy).Inc()
	DiscoveryRuns.WithLabelValues("ok").Inc()
}
