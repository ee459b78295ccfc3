// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IncomeRange describes an estimated income band for an opportunity.
type IncomeRange struct {
	// Min is the lower bound in whole currency units.
	Min float64 `json:"min"`

	// Max is the upper bound in whole currency units.
	Max float64 `json:"max"`

	// Timeframe is the unit the bounds apply to: "month", "project", "year".
	Timeframe string `json:"timeframe"`
}

// Monthly normalizes the midpoint of the range to a monthly figure.
// Project-based income is assumed to repeat roughly monthly; yearly
// income is divided by twelve.
func (r IncomeRange) Monthly() float64 {
	mid := (r.Min + r.Max) / 2
	switch strings.ToLower(r.Timeframe) {
	case "year", "yearly", "annual":
		return mid / 12
	default:
		return mid
	}
}

// CostRange describes an estimated startup cost band.
type CostRange struct {
	// Min is the lower bound in whole currency units.
	Min float64 `json:"min"`

	// Max is the upper bound in whole currency units.
	Max float64 `json:"max"`
}

// TimeRange describes the weekly time commitment an opportunity needs.
type TimeRange struct {
	// MinHours is the minimum hours per week.
	MinHours int `json:"min_hours"`

	// MaxHours is the maximum hours per week.
	MaxHours int `json:"max_hours"`
}

// SuccessStory is a short narrative record attached to an opportunity.
type SuccessStory struct {
	// Name identifies the person or handle behind the story.
	Name string `json:"name"`

	// Outcome summarizes what was achieved.
	Outcome string `json:"outcome"`

	// Timeframe is how long the outcome took ("3 months").
	Timeframe string `json:"timeframe,omitempty"`
}

// Resource is a titled link to supporting material.
type Resource struct {
	// Title is the display title of the resource.
	Title string `json:"title"`

	// URL is the resource location.
	URL string `json:"url"`
}

// MatchFactor is one ranked contributor to an opportunity's match score.
type MatchFactor struct {
	// Name identifies the factor ("skill_match", "income_fit").
	Name string `json:"name"`

	// Detail is a human-readable explanation of the contribution.
	Detail string `json:"detail"`

	// Weight is the factor's contribution to the combined score (0-1).
	Weight float64 `json:"weight"`
}

// SkillGapReport breaks down the estimated learning time between a
// user's skills and an opportunity's requirements.
type SkillGapReport struct {
	// Days is the total estimated learning days, capped at 90.
	Days int `json:"days"`

	// PerSkill lists the per-skill estimates that contributed.
	PerSkill []SkillEstimate `json:"per_skill,omitempty"`

	// Heuristic indicates the coarse out-of-vocabulary fallback was used.
	Heuristic bool `json:"heuristic,omitempty"`
}

// SkillEstimate is the estimated learning time for one missing skill.
type SkillEstimate struct {
	// Skill is the skill name as matched or requested.
	Skill string `json:"skill"`

	// Days is the estimated learning days for this skill.
	Days int `json:"days"`

	// Prerequisite marks estimates pulled in through a prerequisite chain.
	Prerequisite bool `json:"prerequisite,omitempty"`
}

// Opportunity is a candidate income-generating activity surfaced to a
// user. The identifier is immutable once assigned; the annotation
// fields (MatchScore through SkillGap) are written once per pipeline
// pass and never shared between concurrent runs.
type Opportunity struct {
	// ID is globally unique: "<source>-<unixnano>-<nonce>".
	ID string `json:"id"`

	// SourceID identifies the source that produced this opportunity.
	SourceID string `json:"source_id"`

	// Title is the opportunity headline.
	Title string `json:"title"`

	// Description explains the opportunity.
	Description string `json:"description"`

	// RequiredSkills are skills needed to start; order is irrelevant.
	RequiredSkills []string `json:"required_skills"`

	// NiceToHaveSkills improve fit but are not required.
	NiceToHaveSkills []string `json:"nice_to_have_skills,omitempty"`

	// Type classifies the opportunity.
	Type OpportunityType `json:"type"`

	// Income is the estimated income band.
	Income IncomeRange `json:"income"`

	// StartupCost is the estimated upfront cost band.
	StartupCost CostRange `json:"startup_cost"`

	// TimeRequired is the weekly time commitment band.
	TimeRequired TimeRange `json:"time_required"`

	// EntryBarrier is how hard it is to get started.
	EntryBarrier Tier `json:"entry_barrier"`

	// MarketDemand is the observed demand tier; TierUnknown when absent.
	MarketDemand Tier `json:"market_demand,omitempty"`

	// StepsToStart is an ordered sequence of first actions.
	StepsToStart []string `json:"steps_to_start,omitempty"`

	// SuccessStories are narrative records from people who did this.
	SuccessStories []SuccessStory `json:"success_stories,omitempty"`

	// Resources are supporting links.
	Resources []Resource `json:"resources,omitempty"`

	// MatchScore is the combined fit score (0-1), set by scoring.
	MatchScore float64 `json:"match_score,omitempty"`

	// MatchFactors are the top contributing factors, best first.
	MatchFactors []MatchFactor `json:"match_factors,omitempty"`

	// SkillGapDays is the estimated days to close the skill gap.
	SkillGapDays int `json:"skill_gap_days,omitempty"`

	// TimeToFirstRevenue is a coarse estimate ("1-3 months").
	TimeToFirstRevenue string `json:"time_to_first_revenue,omitempty"`

	// ROIScore is a normalized 0-100 return estimate.
	ROIScore float64 `json:"roi_score,omitempty"`

	// SkillGap is the structured gap report when analysis is enabled.
	SkillGap *SkillGapReport `json:"skill_gap,omitempty"`

	// Synthesized marks placeholder opportunities reconstructed from an
	// id after every lookup stage missed. Callers can distinguish these
	// from real source data.
	Synthesized bool `json:"synthesized,omitempty"`
}

// NewID mints an opportunity identifier carrying its source prefix,
// an insertion timestamp, and a random nonce.
func NewID(sourceID string) string {
	nonce := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s", sourceID, time.Now().UnixNano(), nonce)
}

// SourceFromID extracts the source prefix from an opportunity id.
// Returns an empty string if the id does not follow the convention.
func SourceFromID(id string) string {
	// The source id itself may contain hyphens; the timestamp and nonce
	// are always the last two segments.
	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[:len(parts)-2], "-")
}

// Clone returns a deep copy of the opportunity. The cache hands out
// clones so callers never hold references into shared state.
func (o Opportunity) Clone() Opportunity {
	c := o
	c.RequiredSkills = append([]string(nil), o.RequiredSkills...)
	c.NiceToHaveSkills = append([]string(nil), o.NiceToHaveSkills...)
	c.StepsToStart = append([]string(nil), o.StepsToStart...)
	c.SuccessStories = append([]SuccessStory(nil), o.SuccessStories...)
	c.Resources = append([]Resource(nil), o.Resources...)
	c.MatchFactors = append([]MatchFactor(nil), o.MatchFactors...)
	if o.SkillGap != nil {
		gap := *o.SkillGap
		gap.PerSkill = append([]SkillEstimate(nil), o.SkillGap.PerSkill...)
		c.SkillGap = &gap
	}
	return c
}
