// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context should yield empty request ID, got %q", got)
	}

	id := NewRequestID()
	if id == "" {
		t.Fatal("NewRequestID returned empty string")
	}

	ctx = ContextWithRequestID(ctx, id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Errorf("RequestIDFromContext = %q, want %q", got, id)
	}
}

func TestNewRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewRequestID()
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	tagged := zerolog.New(&buf).With().Str("request_id", "req-1").Logger()

	ctx := ContextWithLogger(context.Background(), tagged)
	logger := LoggerFromContext(ctx)
	logger.Info().Msg("handled")

	if !strings.Contains(buf.String(), "req-1") {
		t.Error("context logger should carry the request_id field")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	// The fallback is the global logger; it must be usable.
	logger.Debug().Msg("fallback")
}
