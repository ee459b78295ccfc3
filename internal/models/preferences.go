// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package models

import (
	"strconv"
	"strings"
	"unicode"
)

// FeatureFlags toggles optional pipeline stages for one discovery run.
type FeatureFlags struct {
	// UseML selects the feature-vector scoring strategy.
	UseML bool `json:"use_ml"`

	// UseEnhanced enables the external AI enhancement pass.
	UseEnhanced bool `json:"use_enhanced"`

	// UseSkillGap enables per-opportunity skill gap analysis.
	UseSkillGap bool `json:"use_skill_gap"`

	// IncludeROI enables ROI re-weighting and the 0-100 ROI score.
	IncludeROI bool `json:"include_roi"`

	// Discoverable opts the user into similar-user matching.
	Discoverable bool `json:"discoverable"`
}

// Preferences captures one user's discovery request. It is created per
// request and immutable for the duration of one discovery call.
type Preferences struct {
	// UserID identifies the requesting user.
	UserID string `json:"user_id"`

	// Skills are the user's self-reported skills.
	Skills []string `json:"skills"`

	// TimePerWeek is free-text availability ("10", "evenings only").
	TimePerWeek string `json:"time_per_week"`

	// RiskAppetite is the user's risk tolerance.
	RiskAppetite Tier `json:"risk_appetite"`

	// IncomeGoal is the target monthly income; zero means unset.
	IncomeGoal float64 `json:"income_goal"`

	// WorkPreference is "remote", "local", "both", or "any".
	WorkPreference string `json:"work_preference,omitempty"`

	// Flags selects optional pipeline stages.
	Flags FeatureFlags `json:"flags"`
}

// Availability buckets used when TimePerWeek carries no explicit number.
var availabilityBuckets = map[string]int{
	"evening":  10,
	"evenings": 10,
	"weekend":  16,
	"weekends": 16,
	"part":     20,
	"full":     40,
}

// defaultHoursPerWeek is assumed when availability cannot be parsed.
const defaultHoursPerWeek = 10

// HoursPerWeek buckets the free-text availability into hours per week.
// The first integer found wins; otherwise keyword buckets apply
// ("evenings" -> 10, "weekends" -> 16, "part time" -> 20, "full time"
// -> 40); anything else defaults to 10.
func (p Preferences) HoursPerWeek() int {
	text := strings.ToLower(strings.TrimSpace(p.TimePerWeek))
	if text == "" {
		return defaultHoursPerWeek
	}

	if n, ok := firstInt(text); ok && n > 0 {
		if n > 80 {
			n = 80
		}
		return n
	}

	for keyword, hours := range availabilityBuckets {
		if strings.Contains(text, keyword) {
			return hours
		}
	}

	return defaultHoursPerWeek
}

// firstInt extracts the first run of digits from s.
func firstInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}

// HasSkill reports whether the user lists the given skill, matching
// case-insensitively on exact name or substring in either direction.
func (p Preferences) HasSkill(skill string) bool {
	want := strings.ToLower(strings.TrimSpace(skill))
	if want == "" {
		return false
	}
	for _, s := range p.Skills {
		have := strings.ToLower(strings.TrimSpace(s))
		if have == want {
			return true
		}
		if have != "" && (strings.Contains(have, want) || strings.Contains(want, have)) {
			return true
		}
	}
	return false
}
