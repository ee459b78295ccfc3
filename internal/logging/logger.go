// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package logging provides structured logging for all HustleMap components,
// backed by zerolog. A single global logger is configured once at startup
// via Init; packages derive component-scoped sub-loggers with With().
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger initialization.
type Config struct {
	// Level is the minimum level to emit: trace, debug, info, warn,
	// error, fatal, panic, or disabled. Defaults to info.
	Level string `koanf:"level" json:"level"`

	// Format selects the output encoding: "json" for machine-readable
	// output or "console" for human-readable development output.
	Format string `koanf:"format" json:"format"`

	// Caller adds the file:line of the call site to each event.
	Caller bool `koanf:"caller" json:"caller"`

	// Timestamp adds an RFC3339 timestamp to each event.
	Timestamp bool `koanf:"timestamp" json:"timestamp"`

	// Output is the destination writer. Defaults to os.Stderr.
	Output io.Writer `koanf:"-" json:"-"`
}

// DefaultConfig returns the production logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
	}
}

var (
	mu     sync.RWMutex
	global = newLogger(DefaultConfig())
)

// Init configures the global logger. Call once during startup, before
// any component acquires a sub-logger.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	global = newLogger(cfg)
}

func newLogger(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(parseLevel(cfg.Level)).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// parseLevel maps a level name to a zerolog level. Unknown names fall
// back to info rather than failing startup.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLogger replaces the global logger. Intended for tests that need to
// capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = logger
}

// With returns a sub-logger tagged with a component name. Every package
// uses this to scope its events:
//
//	logger := logging.With("discovery")
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func With(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
