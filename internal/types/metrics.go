// Package types provides type definitions for structured data used throughout the burnout risk service.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MetricInput is a sparse record of self-reported wellbeing signals.
// A nil field means the signal was not reported and is excluded from scoring;
// it is never treated as zero.
type MetricInput struct {
	SleepHours         *float64 `json:"sleep_hours,omitempty"`
	DeadlinesNext7Days *int     `json:"deadlines_next_7_days,omitempty"`
	WorkHours          *float64 `json:"work_hours,omitempty"`
	StressSelfReport   *int     `json:"stress_self_report,omitempty"`
	SentimentScore     *float64 `json:"sentiment_score,omitempty"` // -1 very negative, +1 very positive
}

// IsEmpty reports whether no signal is present.
func (m MetricInput) IsEmpty() bool {
	return m.SleepHours == nil &&
		m.DeadlinesNext7Days == nil &&
		m.WorkHours == nil &&
		m.StressSelfReport == nil &&
		m.SentimentScore == nil
}

// Overlay returns a copy of m with every field present in changes replacing the field in m.
func (m MetricInput) Overlay(changes MetricInput) MetricInput {
	out := m
	if changes.SleepHours != nil {
		out.SleepHours = Float(*changes.SleepHours)
	}
	if changes.DeadlinesNext7Days != nil {
		out.DeadlinesNext7Days = Int(*changes.DeadlinesNext7Days)
	}
	if changes.WorkHours != nil {
		out.WorkHours = Float(*changes.WorkHours)
	}
	if changes.StressSelfReport != nil {
		out.StressSelfReport = Int(*changes.StressSelfReport)
	}
	if changes.SentimentScore != nil {
		out.SentimentScore = Float(*changes.SentimentScore)
	}
	return out
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
