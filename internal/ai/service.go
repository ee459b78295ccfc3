// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package ai

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hustlemap/hustlemap/internal/models"
)

// Service is the enhancement surface the orchestrator calls. It wraps
// an Enhancer with the deterministic fallback so enhancement never
// fails a discovery run; the worst case is hand-authored supplements
// and the original ordering.
type Service struct {
	enhancer Enhancer
	logger   zerolog.Logger
	onFallback func()
}

// NewService creates the enhancement service. enhancer may be nil, in
// which case every call takes the fallback path. onFallback, when
// non-nil, is invoked once per degraded call for metrics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(enhancer Enhancer, logger zerolog.Logger, onFallback func()) *Service {
	return &Service{
		enhancer:   enhancer,
		logger:     logger.With().Str("component", "ai").Logger(),
		onFallback: onFallback,
	}
}

// Supplement returns count additional opportunities for the user,
// model-generated when possible, hand-authored otherwise.
func (s *Service) Supplement(ctx context.Context, prefs models.Preferences, count int) []models.Opportunity {
	if count <= 0 {
		return nil
	}

	if s.enhancer != nil {
		ops, err := s.enhancer.Generate(ctx, prefs, count)
		if err == nil {
			return ops
		}
		s.logger.Warn().Err(err).Msg("generation failed, using fallback supplements")
	}

	s.fellBack()
	return Supplement(prefs, count)
}

// Rerank lets the model reorder ops. Any failure returns the input
// ordering unchanged.
func (s *Service) Rerank(ctx context.Context, ops []models.Opportunity, prefs models.Preferences) []models.Opportunity {
	if s.enhancer == nil || len(ops) < 2 {
		return ops
	}

	reordered, err := s.enhancer.Rerank(ctx, ops, prefs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rerank failed, keeping score ordering")
		s.fellBack()
		return ops
	}
	return reordered
}

func (s *Service) fellBack() {
	if s.onFallback != nil {
		s.onFallback()
	}
}
