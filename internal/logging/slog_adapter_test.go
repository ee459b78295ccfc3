// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func newTestSlogLogger(buf *bytes.Buffer) *slog.Logger {
	zl := zerolog.New(buf).Level(zerolog.DebugLevel)
	return slog.New(NewSlogHandlerWithLogger(zl))
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (got %q)", err, buf.String())
	}
	return entry
}

func TestSlogHandlerLevels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		newTestSlogLogger(&buf).Log(context.Background(), tt.level, "msg")

		entry := decodeEntry(t, &buf)
		if entry["level"] != tt.want {
			t.Errorf("slog level %v mapped to %v, want %v", tt.level, entry["level"], tt.want)
		}
	}
}

func TestSlogHandlerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestSlogLogger(&buf)

	logger.Info("attrs",
		slog.String("s", "v"),
		slog.Int("n", 42),
		slog.Bool("b", true),
		slog.Float64("f", 1.5),
		slog.Duration("d", 2*time.Second),
	)

	entry := decodeEntry(t, &buf)
	if entry["s"] != "v" {
		t.Errorf("s = %v", entry["s"])
	}
	if entry["n"] != float64(42) {
		t.Errorf("n = %v", entry["n"])
	}
	if entry["b"] != true {
		t.Errorf("b = %v", entry["b"])
	}
	if entry["f"] != 1.5 {
		t.Errorf("f = %v", entry["f"])
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestSlogLogger(&buf).With(slog.String("svc", "api"))

	logger.WithGroup("req").Info("grouped", slog.String("path", "/healthz"))

	entry := decodeEntry(t, &buf)
	if entry["svc"] != "api" {
		t.Errorf("svc = %v, want api", entry["svc"])
	}
	if entry["req.path"] != "/healthz" {
		t.Errorf("req.path = %v, want /healthz", entry["req.path"])
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	zl := zerolog.New(bytes.NewBuffer(nil)).Level(zerolog.WarnLevel)
	h := NewSlogHandlerWithLogger(zl)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewSlogLoggerUsesGlobal(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	NewSlogLogger().Info("via global")

	entry := decodeEntry(t, &buf)
	if entry["message"] != "via global" {
		t.Errorf("message = %v", entry["message"])
	}
}
