package risk

import (
	"fmt"

	"github.com/equilibria/burnout-risk/internal/types"
)

// WhatIf rescores the baseline with the present fields of changes applied on top of it.
func WhatIf(baseline, changes types.MetricInput) (*types.WhatIfResult, error) {
	before, err := CalculateRisk(baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to score baseline: %w", err)
	}

	after, err := CalculateRisk(baseline.Overlay(changes))
	if err != nil {
		return nil, fmt.Errorf("failed to score changes: %w", err)
	}

	return &types.WhatIfResult{
		BaselineProbability: before.BurnoutProbability,
		NewProbability:      after.BurnoutProbability,
		DeltaPercent:        round(after.BurnoutProbability-before.BurnoutProbability, 2),
		Baseline:            before,
		Updated:             after,
	}, nil
}
