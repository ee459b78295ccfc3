// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package models defines the core domain types shared across the
// discovery pipeline: opportunities, preferences, results, and the
// enumerations that classify them.
package models

import "strings"

// OpportunityType classifies a monetization opportunity.
type OpportunityType int

const (
	// TypeUnknown is the zero value for unclassified opportunities.
	TypeUnknown OpportunityType = iota
	// TypeFreelance covers client-work gigs (marketplace projects, contracts).
	TypeFreelance
	// TypeDigitalProduct covers sellable artifacts (templates, courses, tools).
	TypeDigitalProduct
	// TypeContent covers content plays (newsletters, video channels, blogs).
	TypeContent
	// TypeService covers productized or recurring services.
	TypeService
	// TypePassive covers low-touch recurring income plays.
	TypePassive
	// TypeInfoProduct covers packaged expertise (ebooks, cohorts, guides).
	TypeInfoProduct
)

// String returns a human-readable name for the opportunity type.
func (t OpportunityType) String() string {
	switch t {
	case TypeFreelance:
		return "freelance"
	case TypeDigitalProduct:
		return "digital_product"
	case TypeContent:
		return "content"
	case TypeService:
		return "service"
	case TypePassive:
		return "passive"
	case TypeInfoProduct:
		return "info_product"
	default:
		return "unknown"
	}
}

// ParseOpportunityType parses a type name, case-insensitively.
// Unrecognized input yields TypeUnknown.
func ParseOpportunityType(s string) OpportunityType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freelance", "gig":
		return TypeFreelance
	case "digital_product", "digital-product", "product":
		return TypeDigitalProduct
	case "content":
		return TypeContent
	case "service":
		return TypeService
	case "passive":
		return TypePassive
	case "info_product", "info-product", "course":
		return TypeInfoProduct
	default:
		return TypeUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t OpportunityType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OpportunityType) UnmarshalText(b []byte) error {
	*t = ParseOpportunityType(string(b))
	return nil
}

// AllOpportunityTypes lists every concrete opportunity type, in enum order.
// Used by diversity enforcement to iterate groups deterministically.
func AllOpportunityTypes() []OpportunityType {
	return []OpportunityType{
		TypeFreelance, TypeDigitalProduct, TypeContent,
		TypeService, TypePassive, TypeInfoProduct,
	}
}

// Tier is an ordered low/medium/high scale used for entry barriers,
// market demand, and risk appetite. TierAny matches everything.
type Tier int

const (
	// TierUnknown is the zero value for unset tiers.
	TierUnknown Tier = iota
	// TierLow is the lowest tier.
	TierLow
	// TierMedium is the middle tier.
	TierMedium
	// TierHigh is the highest tier.
	TierHigh
	// TierAny matches any tier (used for risk appetite "any").
	TierAny
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	case TierAny:
		return "any"
	default:
		return "unknown"
	}
}

// ParseTier parses a tier name, case-insensitively.
// Unrecognized input yields TierUnknown.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow
	case "medium", "moderate", "med":
		return TierMedium
	case "high":
		return TierHigh
	case "any", "all", "":
		return TierAny
	default:
		return TierUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	*t = ParseTier(string(b))
	return nil
}

// Distance returns the absolute ordinal distance between two tiers.
// TierAny and TierUnknown are treated as distance zero to everything.
func (t Tier) Distance(other Tier) int {
	if t == TierAny || other == TierAny || t == TierUnknown || other == TierUnknown {
		return 0
	}
	d := int(t) - int(other)
	if d < 0 {
		d = -d
	}
	return d
}
