// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/hustlemap/hustlemap/internal/models"
)

// GeneratedSourceID stamps opportunities produced by the model service.
const GeneratedSourceID = "ai-generated"

// maxResponseBytes bounds how much of a model response is read.
const maxResponseBytes = 1 << 20

// Enhancer is the external model service boundary. Both calls are
// unreliable by contract; callers degrade to the deterministic
// fallback rather than propagating errors.
type Enhancer interface {
	// Generate produces up to count new opportunities for the user.
	Generate(ctx context.Context, prefs models.Preferences, count int) ([]models.Opportunity, error)

	// Rerank reorders ops by the model's judgment of fit.
	Rerank(ctx context.Context, ops []models.Opportunity, prefs models.Preferences) ([]models.Opportunity, error)
}

// ClientConfig configures the HTTP enhancer.
type ClientConfig struct {
	// BaseURL is the model service endpoint root.
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Timeout bounds each request.
	Timeout time.Duration

	// RequestsPerMinute caps the outbound call rate.
	RequestsPerMinute int
}

// Client calls the model service over HTTP. Calls are guarded by a
// circuit breaker so a down service stops consuming the request budget,
// and by a rate limiter so bursts of discovery traffic cannot exhaust
// the provider quota.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	templates *TemplateStore
	breaker   *gobreaker.CircuitBreaker[[]byte]
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// NewClient creates the HTTP enhancer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg ClientConfig, templates *TemplateStore, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}

	componentLogger := logger.With().Str("component", "ai_client").Logger()

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "ai-enhancement",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		templates: templates,
		breaker:   breaker,
		limiter:   rate.NewLimiter(rate.Limit(float64(rpm)/60), rpm),
		logger:    componentLogger,
	}
}

// Generate asks the model service for count new opportunities tailored
// to prefs. Returned opportunities carry fresh ids and the generated
// source id.
func (c *Client) Generate(ctx context.Context, prefs models.Preferences, count int) ([]models.Opportunity, error) {
	prompt, err := c.templates.Fill(TemplateGenerate, map[string]string{
		"count":  strconv.Itoa(count),
		"skills": strings.Join(prefs.Skills, ", "),
		"hours":  strconv.Itoa(prefs.HoursPerWeek()),
		"risk":   prefs.RiskAppetite.String(),
		"goal":   strconv.FormatFloat(prefs.IncomeGoal, 'f', 0, 64),
	})
	if err != nil {
		return nil, err
	}

	body, err := c.complete(ctx, "/v1/generate", prompt)
	if err != nil {
		c.templates.RecordFailure(TemplateGenerate, errorSignature(err))
		return nil, err
	}

	var ops []models.Opportunity
	if err := json.Unmarshal(body, &ops); err != nil {
		c.templates.RecordFailure(TemplateGenerate, "malformed_json")
		return nil, fmt.Errorf("decoding generated opportunities: %w", err)
	}
	if len(ops) == 0 {
		c.templates.RecordFailure(TemplateGenerate, "empty_response")
		return nil, errors.New("model returned no opportunities")
	}

	c.templates.RecordSuccess(TemplateGenerate)
	for i := range ops {
		ops[i].SourceID = GeneratedSourceID
		ops[i].ID = models.NewID(GeneratedSourceID)
	}
	if len(ops) > count {
		ops = ops[:count]
	}
	return ops, nil
}

// Rerank asks the model service to reorder ops for prefs. The response
// must be a permutation of the input ids; anything else is malformed
// and fails the call.
func (c *Client) Rerank(ctx context.Context, ops []models.Opportunity, prefs models.Preferences) ([]models.Opportunity, error) {
	payload, err := json.Marshal(rerankCandidates(ops))
	if err != nil {
		return nil, fmt.Errorf("encoding rerank candidates: %w", err)
	}

	prompt, err := c.templates.Fill(TemplateRerank, map[string]string{
		"skills":        strings.Join(prefs.Skills, ", "),
		"hours":         strconv.Itoa(prefs.HoursPerWeek()),
		"risk":          prefs.RiskAppetite.String(),
		"opportunities": string(payload),
	})
	if err != nil {
		return nil, err
	}

	body, err := c.complete(ctx, "/v1/rerank", prompt)
	if err != nil {
		c.templates.RecordFailure(TemplateRerank, errorSignature(err))
		return nil, err
	}

	var order []string
	if err := json.Unmarshal(body, &order); err != nil {
		c.templates.RecordFailure(TemplateRerank, "malformed_json")
		return nil, fmt.Errorf("decoding rerank order: %w", err)
	}

	reordered, err := applyOrder(ops, order)
	if err != nil {
		c.templates.RecordFailure(TemplateRerank, "malformed_json")
		return nil, err
	}

	c.templates.RecordSuccess(TemplateRerank)
	return reordered, nil
}

// complete sends one prompt through the rate limiter and breaker and
// returns the raw response body.
func (c *Client) complete(ctx context.Context, path, prompt string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		reqBody, err := json.Marshal(map[string]string{"prompt": prompt})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}
		return body, nil
	})
}

// rerankCandidate is the trimmed view sent to the model for reranking.
type rerankCandidate struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	RequiredSkills []string `json:"required_skills"`
}

func rerankCandidates(ops []models.Opportunity) []rerankCandidate {
	out := make([]rerankCandidate, len(ops))
	for i, op := range ops {
		out[i] = rerankCandidate{
			ID:             op.ID,
			Title:          op.Title,
			Type:           op.Type.String(),
			RequiredSkills: op.RequiredSkills,
		}
	}
	return out
}

// applyOrder reorders ops by the given id sequence, requiring an exact
// permutation of the input ids.
func applyOrder(ops []models.Opportunity, order []string) ([]models.Opportunity, error) {
	if len(order) != len(ops) {
		return nil, fmt.Errorf("rerank returned %d ids for %d opportunities", len(order), len(ops))
	}

	byID := make(map[string]models.Opportunity, len(ops))
	for _, op := range ops {
		byID[op.ID] = op
	}

	out := make([]models.Opportunity, 0, len(ops))
	for _, id := range order {
		op, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("rerank returned unknown or duplicate id %q", id)
		}
		delete(byID, id)
		out = append(out, op)
	}
	return out, nil
}

// errorSignature classifies an enhancement failure for template
// failure tracking.
func errorSignature(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	default:
		return "request_failed"
	}
}

var _ Enhancer = (*Client)(nil)
