package types

// RiskResult is the explainable output of a single risk scoring call.
type RiskResult struct {
	BurnoutProbability float64            `json:"burnout_probability"` // 0-100, 2 decimals
	RiskIndexRaw       float64            `json:"risk_index_raw"`      // weighted sum before the logistic transform
	InputsUsed         []string           `json:"inputs_used"`
	Factors            map[string]float64 `json:"factors"` // factor name -> clamped component risk
}

// ForecastResult holds a fixed-horizon point forecast and its uncertainty band.
// All three slices have the same length.
type ForecastResult struct {
	Forecast   []float64 `json:"forecast"`
	LowerBound []float64 `json:"lower_bound"`
	UpperBound []float64 `json:"upper_bound"`
}

// WhatIfResult compares a baseline score with the score after applying changes.
type WhatIfResult struct {
	BaselineProbability float64     `json:"baseline_probability"`
	NewProbability      float64     `json:"new_probability"`
	DeltaPercent        float64     `json:"delta_percent"`
	Baseline            *RiskResult `json:"baseline"`
	Updated             *RiskResult `json:"updated"`
}

// ActionItem is a single preventive recommendation.
type ActionItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ScenarioResult is a named sample profile with its score.
type ScenarioResult struct {
	Name    string      `json:"name"`
	Metrics MetricInput `json:"metrics"`
	Result  *RiskResult `json:"result"`
}
