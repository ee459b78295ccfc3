// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package ai

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTemplateFill(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())
	s.Register("greet", "Hello {{name}}, you have {{count}} offers.")

	out, err := s.Fill("greet", map[string]string{"name": "Sam", "count": "3"})
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if out != "Hello Sam, you have 3 offers." {
		t.Errorf("Fill() = %q", out)
	}
}

func TestTemplateFillUnknownName(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())

	if _, err := s.Fill("nope", nil); err == nil {
		t.Fatal("Fill() on unknown template: want error, got nil")
	}
}

func TestTemplateFillLeavesUnknownVars(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())
	s.Register("partial", "{{known}} and {{unknown}}")

	out, err := s.Fill("partial", map[string]string{"known": "yes"})
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if out != "yes and {{unknown}}" {
		t.Errorf("Fill() = %q, want untouched placeholder", out)
	}
}

func TestTemplateSpawnsStricterVariant(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())
	s.Register("gen", "base body")

	for i := 0; i < failureSpawnThreshold; i++ {
		s.RecordFailure("gen", "malformed_json")
	}

	out, err := s.Fill("gen", nil)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if !strings.HasPrefix(out, "base body") || out == "base body" {
		t.Errorf("preferred variant = %q, want stricter body built on the original", out)
	}

	versions := 0
	for _, st := range s.Stats() {
		if st.Name == "gen" {
			versions++
		}
	}
	if versions != 2 {
		t.Errorf("variants = %d, want 2 after spawn", versions)
	}
}

func TestTemplateMixedSignaturesDoNotSpawn(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())
	s.Register("gen", "base body")

	s.RecordFailure("gen", "timeout")
	s.RecordFailure("gen", "malformed_json")
	s.RecordFailure("gen", "timeout")
	s.RecordFailure("gen", "malformed_json")

	out, _ := s.Fill("gen", nil)
	if out != "base body" {
		t.Errorf("variant spawned despite alternating signatures: %q", out)
	}
}

func TestTemplateSuccessResetsStreak(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())
	s.Register("gen", "base body")

	s.RecordFailure("gen", "timeout")
	s.RecordFailure("gen", "timeout")
	s.RecordSuccess("gen")
	s.RecordFailure("gen", "timeout")
	s.RecordFailure("gen", "timeout")

	out, _ := s.Fill("gen", nil)
	if out != "base body" {
		t.Error("variant spawned although a success broke the failure streak")
	}
}

func TestTemplateBuiltinsRegistered(t *testing.T) {
	s := NewTemplateStore(zerolog.Nop())

	for _, name := range []string{TemplateGenerate, TemplateRerank} {
		if _, err := s.Fill(name, nil); err != nil {
			t.Errorf("builtin template %q missing: %v", name, err)
		}
	}
}
