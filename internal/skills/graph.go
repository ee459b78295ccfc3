// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

// Package skills models a directed graph of skills with prerequisites
// and learning-time estimates, and computes the estimated days needed
// to close the gap between a user's skills and an opportunity's
// requirements.
package skills

import (
	"strings"
	"sync"

	"github.com/hustlemap/hustlemap/internal/models"
)

// daysPerComplexityPoint converts a node's 1-10 complexity rank into a
// base learning-time estimate.
const daysPerComplexityPoint = 3

// observedTrustSamples is the sample count at which the observed
// average carries equal weight to the complexity-derived base estimate.
const observedTrustSamples = 5

// Node is one skill in the graph.
type Node struct {
	// ID is the canonical skill identifier ("seo", "copywriting").
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category groups related skills ("writing", "design", "tech").
	Category string `json:"category"`

	// Prerequisites lists node IDs that must be learned first.
	Prerequisites []string `json:"prerequisites,omitempty"`

	// Complexity ranks learning difficulty from 1 (trivial) to 10.
	Complexity int `json:"complexity"`

	// Resources are learning materials for the skill.
	Resources []models.Resource `json:"resources,omitempty"`

	// observedDays is the running average of reported learning days.
	observedDays float64

	// observedSamples counts the reports behind observedDays.
	observedSamples int
}

// Graph is a directed skill graph. Reads are concurrent; the per-skill
// observed learning averages are the one piece of cross-request mutable
// state and are updated under the write lock.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
}

// NewGraph builds a graph from the given nodes. Node IDs are
// normalized to lower case.
func NewGraph(nodes []Node) *Graph {
	g := &Graph{nodes: make(map[string]*Node, len(nodes))}
	for i := range nodes {
		n := nodes[i]
		n.ID = normalize(n.ID)
		if n.Complexity < 1 {
			n.Complexity = 1
		}
		if n.Complexity > 10 {
			n.Complexity = 10
		}
		g.nodes[n.ID] = &n
	}
	return g
}

// NewDefaultGraph builds the graph from the built-in seed nodes.
func NewDefaultGraph() *Graph {
	return NewGraph(seedNodes())
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match resolves a free-text skill name to a node, trying an exact ID
// match first and then substring matching in either direction.
func (g *Graph) Match(skill string) (*Node, bool) {
	want := normalize(skill)
	if want == "" {
		return nil, false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if n, ok := g.nodes[want]; ok {
		return n, true
	}
	for id, n := range g.nodes {
		if strings.Contains(id, want) || strings.Contains(want, id) {
			return n, true
		}
	}
	return nil, false
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[normalize(id)]
	return n, ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EstimateDays returns the learning-time estimate for a node: a blend
// of the complexity-derived base and the observed average, with the
// observed average trusted more as samples accumulate.
func (g *Graph) EstimateDays(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[normalize(id)]
	if !ok {
		return 0
	}
	return n.estimateDaysLocked()
}

func (n *Node) estimateDaysLocked() int {
	base := float64(n.Complexity * daysPerComplexityPoint)
	if n.observedSamples == 0 {
		return int(base)
	}

	trust := float64(n.observedSamples) / float64(n.observedSamples+observedTrustSamples)
	blended := base*(1-trust) + n.observedDays*trust
	if blended < 1 {
		blended = 1
	}
	return int(blended + 0.5)
}

// RecordLearningTime folds one observed learning duration into the
// skill's running average. Updates to the same skill are atomic with
// respect to each other.
func (g *Graph) RecordLearningTime(id string, days int) bool {
	if days <= 0 {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[normalize(id)]
	if !ok {
		return false
	}

	total := n.observedDays*float64(n.observedSamples) + float64(days)
	n.observedSamples++
	n.observedDays = total / float64(n.observedSamples)
	return true
}
