// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the global middleware stack.
type RouterConfig struct {
	CORSOrigins     []string
	RateLimitReqs   int
	RateLimitWindow time.Duration
}

// NewRouter assembles the full route tree.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(cfg.CORSOrigins))

	// Operational endpoints sit outside the rate limit so monitoring
	// never competes with clients for budget.
	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(cfg.RateLimitReqs, cfg.RateLimitWindow))
		r.Use(Metrics())

		r.Post("/discover", h.Discover)
		r.Get("/opportunities/{id}", h.OpportunityByID)

		r.Get("/sources", h.Sources)
		r.Get("/sources/{id}/opportunities", h.SourceOpportunities)

		r.Put("/users/{id}", h.UpsertUser)
		r.Get("/users/{id}", h.GetUser)
		r.Get("/users/{id}/results", h.UserResults)
		r.Post("/users/{id}/interactions", h.RecordInteraction)
	})

	return r
}
