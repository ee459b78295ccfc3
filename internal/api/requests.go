// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hustlemap/hustlemap/internal/models"
)

// validate is the shared validator instance for request structs.
var validate = validator.New()

// DiscoverRequest is the body for POST /api/v1/discover.
type DiscoverRequest struct {
	UserID         string   `json:"user_id" validate:"required,min=1,max=128"`
	Skills         []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=100"`
	TimePerWeek    string   `json:"time_per_week" validate:"omitempty,max=100"`
	RiskAppetite   string   `json:"risk_appetite" validate:"omitempty,oneof=low medium high any"`
	IncomeGoal     float64  `json:"income_goal" validate:"omitempty,gte=0,lte=10000000"`
	WorkPreference string   `json:"work_preference" validate:"omitempty,oneof=remote local both any"`

	UseML        bool `json:"use_ml"`
	UseEnhanced  bool `json:"use_enhanced"`
	UseSkillGap  bool `json:"use_skill_gap"`
	IncludeROI   bool `json:"include_roi"`
	Discoverable bool `json:"discoverable"`
}

// Preferences converts the request into the pipeline's preference model.
func (r DiscoverRequest) Preferences() models.Preferences {
	return models.Preferences{
		UserID:         r.UserID,
		Skills:         r.Skills,
		TimePerWeek:    r.TimePerWeek,
		RiskAppetite:   models.ParseTier(r.RiskAppetite),
		IncomeGoal:     r.IncomeGoal,
		WorkPreference: r.WorkPreference,
		Flags: models.FeatureFlags{
			UseML:        r.UseML,
			UseEnhanced:  r.UseEnhanced,
			UseSkillGap:  r.UseSkillGap,
			IncludeROI:   r.IncludeROI,
			Discoverable: r.Discoverable,
		},
	}
}

// UpsertUserRequest is the body for PUT /api/v1/users/{id}.
type UpsertUserRequest struct {
	Username     string   `json:"username" validate:"required,min=1,max=128"`
	Skills       []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=100"`
	Discoverable bool     `json:"discoverable"`
}

// InteractionRequest is the body for POST /api/v1/users/{id}/interactions.
type InteractionRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required,min=1,max=256"`
	Action        string `json:"action" validate:"required,oneof=save view"`
}

// SourceOpportunitiesRequest holds the query parameters for
// GET /api/v1/sources/{id}/opportunities.
type SourceOpportunitiesRequest struct {
	Limit  int      `validate:"min=1,max=100"`
	Skills []string `validate:"omitempty,max=50,dive,min=1,max=100"`
}

// validationDetails flattens validator errors into field -> constraint
// pairs for the error response payload.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fmt.Sprintf("failed %q constraint", fe.Tag())
	}
	return details
}
