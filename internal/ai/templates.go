// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package ai provides the generative enhancement boundary: versioned
// prompt templates, an HTTP client for the external model service, and
// a deterministic fallback used whenever that service misbehaves.
package ai

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// failureSpawnThreshold is how many consecutive failures with the same
// error signature it takes before a stricter template variant is
// spawned and becomes preferred.
const failureSpawnThreshold = 3

// strictSuffix is appended to a template body when a stricter variant
// is spawned. It tightens the output contract the model keeps breaking.
const strictSuffix = "\n\nRespond with valid JSON only. Do not include " +
	"markdown fences, commentary, or any text outside the JSON document. " +
	"Every field in the schema is required."

// templateVariant is one version of a named template.
type templateVariant struct {
	version   int
	body      string
	successes int
	failures  int

	// consecutive tracks the current same-signature failure streak.
	consecutive   int
	lastSignature string
}

// TemplateStats is a point-in-time snapshot of one variant's counters.
type TemplateStats struct {
	Name      string `json:"name"`
	Version   int    `json:"version"`
	Successes int    `json:"successes"`
	Failures  int    `json:"failures"`
	Preferred bool   `json:"preferred"`
}

// TemplateStore holds versioned prompt templates with {{var}}
// substitution. Outcome reporting drives variant selection: repeated
// failures with the same error signature spawn a stricter variant that
// takes over as the preferred version.
type TemplateStore struct {
	mu       sync.RWMutex
	variants map[string][]*templateVariant
	logger   zerolog.Logger
}

// NewTemplateStore creates a store seeded with the built-in templates.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTemplateStore(logger zerolog.Logger) *TemplateStore {
	s := &TemplateStore{
		variants: make(map[string][]*templateVariant),
		logger:   logger.With().Str("component", "ai_templates").Logger(),
	}
	for name, body := range builtinTemplates {
		s.Register(name, body)
	}
	return s
}

// Register installs a template body as the next version of name. The
// newest version is always preferred.
func (s *TemplateStore) Register(name, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := len(s.variants[name]) + 1
	s.variants[name] = append(s.variants[name], &templateVariant{
		version: version,
		body:    body,
	})
}

// Fill renders the preferred variant of name, substituting every
// {{var}} placeholder from vars. Placeholders with no matching var are
// left intact so a malformed call is visible in the output.
func (s *TemplateStore) Fill(name string, vars map[string]string) (string, error) {
	s.mu.RLock()
	variant := s.preferredLocked(name)
	s.mu.RUnlock()

	if variant == nil {
		return "", fmt.Errorf("template %q not registered", name)
	}

	out := variant.body
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out, nil
}

// RecordSuccess notes a successful use of name's preferred variant and
// resets its failure streak.
func (s *TemplateStore) RecordSuccess(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variant := s.preferredLocked(name)
	if variant == nil {
		return
	}
	variant.successes++
	variant.consecutive = 0
	variant.lastSignature = ""
}

// RecordFailure notes a failed use of name's preferred variant.
// signature classifies the failure ("timeout", "malformed_json",
// "empty_response"); three consecutive failures with the same signature
// spawn a stricter variant that becomes preferred.
func (s *TemplateStore) RecordFailure(name, signature string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variant := s.preferredLocked(name)
	if variant == nil {
		return
	}

	variant.failures++
	if signature == variant.lastSignature {
		variant.consecutive++
	} else {
		variant.consecutive = 1
		variant.lastSignature = signature
	}

	if variant.consecutive < failureSpawnThreshold {
		return
	}

	next := &templateVariant{
		version: variant.version + 1,
		body:    variant.body + strictSuffix,
	}
	s.variants[name] = append(s.variants[name], next)

	s.logger.Warn().
		Str("template", name).
		Str("signature", signature).
		Int("version", next.version).
		Msg("spawned stricter template variant after repeated failures")
}

// Stats returns counters for every variant of every template.
func (s *TemplateStore) Stats() []TemplateStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []TemplateStats
	for name, variants := range s.variants {
		for i, v := range variants {
			out = append(out, TemplateStats{
				Name:      name,
				Version:   v.version,
				Successes: v.successes,
				Failures:  v.failures,
				Preferred: i == len(variants)-1,
			})
		}
	}
	return out
}

// preferredLocked returns the newest variant of name. Callers hold mu.
func (s *TemplateStore) preferredLocked(name string) *templateVariant {
	variants := s.variants[name]
	if len(variants) == 0 {
		return nil
	}
	return variants[len(variants)-1]
}

// Built-in template names.
const (
	TemplateGenerate = "generate_opportunities"
	TemplateRerank   = "rerank_opportunities"
)

var builtinTemplates = map[string]string{
	TemplateGenerate: `You are a monetization advisor. Generate {{count}} realistic side-income opportunities for a person with these skills: {{skills}}.
They have {{hours}} hours per week available, a {{risk}} risk appetite, and a monthly income goal of ${{goal}}.
Return a JSON array of opportunity objects with fields: title, description, required_skills, type, income, startup_cost, time_required, entry_barrier, steps_to_start.`,

	TemplateRerank: `You are a monetization advisor. Reorder the following opportunities from best to worst fit for a person with skills: {{skills}}, {{hours}} hours per week available, and a {{risk}} risk appetite.
Opportunities (JSON): {{opportunities}}
Return a JSON array of opportunity ids in the new order. Include every id exactly once.`,
}
