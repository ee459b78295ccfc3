// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package skills

import (
	"hash/fnv"

	"github.com/hustlemap/hustlemap/internal/models"
)

// maxGapDays caps the total estimated learning time.
const maxGapDays = 90

// niceToHaveWeight discounts nice-to-have skills relative to required ones.
const niceToHaveWeight = 0.7

// Heuristic bounds for skills outside the graph's vocabulary. The
// estimate is deterministic per skill name so repeated analyses agree.
const (
	heuristicRequiredMinDays = 7
	heuristicRequiredMaxDays = 21
	heuristicNiceMinDays     = 3
	heuristicNiceMaxDays     = 10
)

// Analyzer composes graph lookups into per-opportunity gap reports.
type Analyzer struct {
	graph *Graph
}

// NewAnalyzer creates a gap analyzer over the given graph.
func NewAnalyzer(graph *Graph) *Analyzer {
	return &Analyzer{graph: graph}
}

// Graph returns the underlying skill graph.
func (a *Analyzer) Graph() *Graph {
	return a.graph
}

// Gap estimates the days needed to close the gap between userSkills and
// an opportunity's required and nice-to-have skills.
//
// Required skills the user lacks are resolved through their unheld
// prerequisite chains; each unresolved node contributes its blended
// learning-time estimate. Nice-to-have skills contribute at 70% and are
// skipped when already counted through a prerequisite chain. The total
// is capped at 90 days. Skills outside the graph's vocabulary fall back
// to a bounded deterministic per-skill estimate so the signal stays
// usable.
func (a *Analyzer) Gap(required, niceToHave, userSkills []string) models.SkillGapReport {
	held := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		held[normalize(s)] = struct{}{}
	}
	userPrefs := models.Preferences{Skills: userSkills}

	report := models.SkillGapReport{}
	counted := make(map[string]struct{})
	matchedAny := false
	total := 0.0

	for _, skill := range required {
		if userPrefs.HasSkill(skill) {
			continue
		}
		node, ok := a.graph.Match(skill)
		if !ok {
			days := boundedEstimate(skill, heuristicRequiredMinDays, heuristicRequiredMaxDays)
			report.PerSkill = append(report.PerSkill, models.SkillEstimate{Skill: skill, Days: days})
			total += float64(days)
			continue
		}
		matchedAny = true
		total += a.resolveChain(node, held, counted, &report, 1.0, false)
	}

	for _, skill := range niceToHave {
		if userPrefs.HasSkill(skill) {
			continue
		}
		node, ok := a.graph.Match(skill)
		if !ok {
			days := boundedEstimate(skill, heuristicNiceMinDays, heuristicNiceMaxDays)
			report.PerSkill = append(report.PerSkill, models.SkillEstimate{Skill: skill, Days: days})
			total += float64(days)
			continue
		}
		matchedAny = true
		if _, already := counted[node.ID]; already {
			continue
		}
		total += a.resolveChain(node, held, counted, &report, niceToHaveWeight, false)
	}

	report.Heuristic = !matchedAny && len(report.PerSkill) > 0
	if total > maxGapDays {
		total = maxGapDays
	}
	report.Days = int(total + 0.5)
	return report
}

// resolveChain walks a node's unheld prerequisite chain depth-first,
// accumulating weighted estimates for every node not yet counted.
func (a *Analyzer) resolveChain(node *Node, held, counted map[string]struct{}, report *models.SkillGapReport, weight float64, isPrereq bool) float64 {
	if _, ok := counted[node.ID]; ok {
		return 0
	}
	if _, ok := held[node.ID]; ok {
		return 0
	}
	counted[node.ID] = struct{}{}

	total := 0.0
	for _, prereqID := range node.Prerequisites {
		prereq, ok := a.graph.Node(prereqID)
		if !ok {
			continue
		}
		total += a.resolveChain(prereq, held, counted, report, weight, true)
	}

	days := float64(a.graph.EstimateDays(node.ID)) * weight
	report.PerSkill = append(report.PerSkill, models.SkillEstimate{
		Skill:        node.ID,
		Days:         int(days + 0.5),
		Prerequisite: isPrereq,
	})
	return total + days
}

// boundedEstimate derives a deterministic in-range day estimate from a
// skill name. It replaces the ad hoc randomization the fallback path
// used to rely on, so tests can assert determinism.
func boundedEstimate(skill string, minDays, maxDays int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(skill)))
	span := maxDays - minDays + 1
	return minDays + int(h.Sum32()%uint32(span))
}
