// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package config loads and validates the HustleMap server configuration.
// Settings are layered with clear precedence: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/hustlemap/hustlemap/internal/scoring"
)

// Config is the root configuration for the HustleMap server.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Cache   CacheConfig   `koanf:"cache"`
	Redis   RedisConfig   `koanf:"redis"`
	Storage StorageConfig `koanf:"storage"`
	AI      AIConfig      `koanf:"ai"`
	Scoring ScoringConfig `koanf:"scoring"`
	Sources SourcesConfig `koanf:"sources"`
	Market  MarketConfig  `koanf:"market"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	// Host and Port form the listen address.
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Timeout bounds request handling end to end.
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful drain on exit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed origins for browser clients.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs per RateLimitWindow per client IP. Zero requests
	// disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig controls structured logging output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CacheConfig controls the opportunity cache.
type CacheConfig struct {
	// TTL is how long a cached opportunity stays resolvable by ID.
	TTL time.Duration `koanf:"ttl"`

	// SweepInterval is how often expired entries are collected.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// RedisConfig selects the optional Redis cache backend. When Addr is
// empty the cache runs in memory.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Enabled reports whether a Redis backend is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// StorageConfig selects the persistent store. When Dir is empty the
// server keeps results in memory only.
type StorageConfig struct {
	// Dir is the Badger database directory.
	Dir string `koanf:"dir"`
}

// Persistent reports whether results survive restarts.
func (s StorageConfig) Persistent() bool { return s.Dir != "" }

// AIConfig controls the optional AI enhancement backend. When BaseURL
// is empty, enhancement runs on the deterministic fallback catalog.
type AIConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
}

// Enabled reports whether a remote AI backend is configured.
func (a AIConfig) Enabled() bool { return a.BaseURL != "" }

// ScoringConfig tunes the feature-vector scoring strategy.
type ScoringConfig struct {
	Weights scoring.FeatureWeights `koanf:"weights"`
}

// SourcesConfig controls the discovery source fan-out.
type SourcesConfig struct {
	// Timeout bounds each source's collection during a fan-out.
	Timeout time.Duration `koanf:"timeout"`
}

// MarketConfig controls the market demand snapshot.
type MarketConfig struct {
	// RefreshSchedule is a cron expression for snapshot refresh.
	RefreshSchedule string `koanf:"refresh_schedule"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			TTL:           30 * time.Minute,
			SweepInterval: 15 * time.Minute,
		},
		Redis: RedisConfig{
			Addr: "",
			DB:   0,
		},
		Storage: StorageConfig{
			Dir: "",
		},
		AI: AIConfig{
			BaseURL:           "",
			Timeout:           15 * time.Second,
			RequestsPerMinute: 30,
		},
		Scoring: ScoringConfig{
			Weights: scoring.DefaultFeatureWeights(),
		},
		Sources: SourcesConfig{
			Timeout: 30 * time.Second,
		},
		Market: MarketConfig{
			RefreshSchedule: "@every 6h",
		},
	}
}

// Validate checks the configuration for values that would break the
// server at runtime. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d outside valid range 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("server.rate_limit_reqs must not be negative, got %d", c.Server.RateLimitReqs)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("cache.sweep_interval must be positive, got %s", c.Cache.SweepInterval)
	}
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("sources.timeout must be positive, got %s", c.Sources.Timeout)
	}
	if c.AI.Enabled() {
		u, err := url.Parse(c.AI.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ai.base_url %q is not a valid URL", c.AI.BaseURL)
		}
		if c.AI.RequestsPerMinute <= 0 {
			return fmt.Errorf("ai.requests_per_minute must be positive, got %d", c.AI.RequestsPerMinute)
		}
	}
	if sum := c.Scoring.Weights.Sum(); sum <= 0 {
		return fmt.Errorf("scoring.weights sum to %f, must be positive", sum)
	}
	return nil
}
