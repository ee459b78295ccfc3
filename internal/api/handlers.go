// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/hustlemap/hustlemap/internal/discovery"
	"github.com/hustlemap/hustlemap/internal/models"
	"github.com/hustlemap/hustlemap/internal/storage"
)

// maxRequestBytes bounds request bodies to keep decode cheap.
const maxRequestBytes = 256 * 1024

// defaultSourceLimit applies when a source listing omits ?limit.
const defaultSourceLimit = 20

// Handler holds the dependencies the HTTP endpoints need.
type Handler struct {
	orchestrator *discovery.Orchestrator
	results      storage.ResultStore
	users        storage.UserStore
}

// NewHandler builds the endpoint handler set.
func NewHandler(orch *discovery.Orchestrator, results storage.ResultStore, users storage.UserStore) *Handler {
	return &Handler{orchestrator: orch, results: results, users: users}
}

// Discover runs the full discovery pipeline for one user.
//
// POST /api/v1/discover
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req DiscoverRequest
	if !decodeBody(rw, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		rw.ValidationError("invalid discovery request", validationDetails(err))
		return
	}

	results, err := h.orchestrator.Discover(r.Context(), req.UserID, req.Preferences())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			rw.NotFound("user " + req.UserID + " is not registered")
			return
		}
		rw.InternalError(err)
		return
	}
	rw.Success(results)
}

// OpportunityByID resolves a single opportunity through the cache
// fallback chain.
//
// GET /api/v1/opportunities/{id}
func (h *Handler) OpportunityByID(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	op, ok := h.orchestrator.OpportunityByID(r.Context(), id)
	if !ok {
		rw.NotFound("opportunity " + id + " not found")
		return
	}
	rw.Success(op)
}

// Sources lists the registered discovery sources.
//
// GET /api/v1/sources
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.orchestrator.Sources())
}

// SourceOpportunities fetches directly from one source, bypassing the
// scoring pipeline.
//
// GET /api/v1/sources/{id}/opportunities?limit=20&skills=a,b
func (h *Handler) SourceOpportunities(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := SourceOpportunitiesRequest{Limit: defaultSourceLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			rw.BadRequest("limit must be an integer")
			return
		}
		req.Limit = n
	}
	if raw := r.URL.Query().Get("skills"); raw != "" {
		req.Skills = strings.Split(raw, ",")
	}
	if err := validate.Struct(req); err != nil {
		rw.ValidationError("invalid source query", validationDetails(err))
		return
	}

	sourceID := chi.URLParam(r, "id")
	ops, err := h.orchestrator.FromSource(r.Context(), sourceID, req.Limit, req.Skills)
	if err != nil {
		rw.NotFound("source " + sourceID + " not found or unavailable")
		return
	}
	rw.Success(ops)
}

// UpsertUser registers or updates a user profile.
//
// PUT /api/v1/users/{id}
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req UpsertUserRequest
	if !decodeBody(rw, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		rw.ValidationError("invalid user", validationDetails(err))
		return
	}

	user := models.User{
		ID:           chi.URLParam(r, "id"),
		Username:     req.Username,
		Skills:       req.Skills,
		Discoverable: req.Discoverable,
	}
	if err := h.users.SaveUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			rw.BadRequest(err.Error())
			return
		}
		rw.InternalError(err)
		return
	}
	rw.Created(user)
}

// GetUser returns a stored user profile.
//
// GET /api/v1/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	user, err := h.users.User(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			rw.NotFound("user " + id + " not found")
			return
		}
		rw.InternalError(err)
		return
	}
	rw.Success(user)
}

// UserResults returns a user's past discovery runs, newest first.
//
// GET /api/v1/users/{id}/results?limit=10
func (h *Handler) UserResults(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			rw.BadRequest("limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	results, err := h.results.ResultsForUser(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if results == nil {
		results = []*models.Results{}
	}
	rw.Success(results)
}

// RecordInteraction records a save or view against an opportunity,
// feeding the collaborative scoring adjustments in later runs.
//
// POST /api/v1/users/{id}/interactions
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req InteractionRequest
	if !decodeBody(rw, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		rw.ValidationError("invalid interaction", validationDetails(err))
		return
	}

	userID := chi.URLParam(r, "id")
	switch req.Action {
	case "view":
		if err := h.results.RecordView(r.Context(), userID, req.OpportunityID); err != nil {
			rw.InternalError(err)
			return
		}
	case "save":
		op, ok := h.orchestrator.OpportunityByID(r.Context(), req.OpportunityID)
		if !ok {
			rw.NotFound("opportunity " + req.OpportunityID + " not found")
			return
		}
		if err := h.results.RecordSave(r.Context(), userID, op); err != nil {
			rw.InternalError(err)
			return
		}
	}
	rw.NoContent()
}

// Health reports liveness.
//
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// decodeBody decodes a bounded JSON body, writing a 400 on failure.
func decodeBody(rw *ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("malformed JSON body")
		return false
	}
	return true
}
