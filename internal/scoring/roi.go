// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package scoring

import (
	"math"

	"github.com/hustlemap/hustlemap/internal/models"
)

// ROI component weights and bounds.
const (
	roiIncomeWeight  = 0.55
	roiCostWeight    = 0.25
	roiSpeedWeight   = 0.20
	roiIncomeCeiling = 5000 // monthly income treated as a full score
	roiCostCeiling   = 2000 // startup cost treated as a zero score
)

// ROI estimates return on investment as a 0-100 score from expected
// monthly income, startup cost, and time to first revenue. It is an
// ordinal ranking aid, not a financial projection.
func ROI(op models.Opportunity) float64 {
	income := math.Min(op.Income.Monthly()/roiIncomeCeiling, 1)

	costMid := (op.StartupCost.Min + op.StartupCost.Max) / 2
	cost := 1 - math.Min(costMid/roiCostCeiling, 1)

	speed := revenueSpeed(op)

	score := roiIncomeWeight*income + roiCostWeight*cost + roiSpeedWeight*speed
	return math.Round(clamp01(score) * 100)
}
