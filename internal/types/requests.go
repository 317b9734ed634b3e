package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports field errors by their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ScoreRequest is the body of POST /score. All five metrics are required at this boundary.
type ScoreRequest struct {
	SleepHours         *float64 `json:"sleep_hours" validate:"required"`
	DeadlinesNext7Days *int     `json:"deadlines_next_7_days" validate:"required"`
	WorkHours          *float64 `json:"work_hours" validate:"required"`
	StressSelfReport   *int     `json:"stress_self_report" validate:"required"`
	SentimentScore     *float64 `json:"sentiment_score" validate:"required"`
}

// Metrics converts the request to a MetricInput.
func (r *ScoreRequest) Metrics() MetricInput {
	return MetricInput{
		SleepHours:         r.SleepHours,
		DeadlinesNext7Days: r.DeadlinesNext7Days,
		WorkHours:          r.WorkHours,
		StressSelfReport:   r.StressSelfReport,
		SentimentScore:     r.SentimentScore,
	}
}

// ForecastRequest is the body of POST /forecast.
type ForecastRequest struct {
	PastScores []float64 `json:"past_scores" validate:"required"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	JournalText string `json:"journal_text" validate:"required,max=20000"`
	Score       bool   `json:"score,omitempty"`
}

// AnalyzeResponse carries the metrics extracted from a journal entry.
type AnalyzeResponse struct {
	MetricInput
	Provider string      `json:"provider"`
	Summary  string      `json:"summary,omitempty"`
	Result   *RiskResult `json:"result,omitempty"`
}

// WhatIfRequest is the body of POST /whatif.
type WhatIfRequest struct {
	Baseline MetricInput `json:"baseline"`
	Changes  MetricInput `json:"changes"`
}

// CheckInRequest is the body of POST /me/checkins. Metrics may be partial; when none are given
// the journal text is used to extract them.
type CheckInRequest struct {
	Date        string      `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Metrics     MetricInput `json:"metrics"`
	JournalText string      `json:"journal_text,omitempty" validate:"max=20000"`
}

// PulseRequest is the body of POST /pulse/{token}.
type PulseRequest struct {
	HeartRate     float64  `json:"heart_rate" validate:"required,gt=0,lt=250"`
	BreathingRate float64  `json:"breathing_rate" validate:"required,gt=0,lt=80"`
	Confidence    *float64 `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"` // defaults to 1
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CheckInRequest using the validator.
func (r *CheckInRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ForecastRequest using the validator.
func (r *ForecastRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the PulseRequest using the validator.
func (r *PulseRequest) Validate() error {
	return validate.Struct(r)
}
