package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestScoreRequest_Validate(t *testing.T) {
	full := ScoreRequest{
		SleepHours:         Float(6),
		DeadlinesNext7Days: Int(0),
		WorkHours:          Float(30),
		StressSelfReport:   Int(5),
		SentimentScore:     Float(0),
	}
	assert.NoError(t, full.Validate(), "zero values are present, not missing")

	partial := ScoreRequest{SleepHours: Float(6), WorkHours: Float(30)}
	assert.ElementsMatch(t,
		[]string{"deadlines_next_7_days", "stress_self_report", "sentiment_score"},
		fieldErrors(t, partial.Validate()))
}

func TestScoreRequest_Metrics(t *testing.T) {
	req := ScoreRequest{SleepHours: Float(5), StressSelfReport: Int(9)}
	m := req.Metrics()

	assert.Equal(t, 5.0, *m.SleepHours)
	assert.Equal(t, 9, *m.StressSelfReport)
	assert.Nil(t, m.WorkHours)
}

func TestCheckInRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CheckInRequest{}).Validate())
	assert.NoError(t, (&CheckInRequest{Date: "2026-02-28"}).Validate())
	assert.Equal(t, []string{"date"}, fieldErrors(t, (&CheckInRequest{Date: "02/28/2026"}).Validate()))
}

func TestPulseRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PulseRequest{HeartRate: 80, BreathingRate: 15}).Validate())

	bad := PulseRequest{HeartRate: 0, BreathingRate: 120, Confidence: Float(1.5)}
	assert.ElementsMatch(t,
		[]string{"heart_rate", "breathing_rate", "confidence"},
		fieldErrors(t, bad.Validate()))
}

func TestAnalyzeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AnalyzeRequest{JournalText: "long day"}).Validate())
	assert.Equal(t, []string{"journal_text"}, fieldErrors(t, (&AnalyzeRequest{}).Validate()))
}

func TestMetricInput_Overlay(t *testing.T) {
	base := MetricInput{SleepHours: Float(5), WorkHours: Float(50)}
	changes := MetricInput{SleepHours: Float(8), StressSelfReport: Int(3)}

	got := base.Overlay(changes)

	assert.Equal(t, 8.0, *got.SleepHours)
	assert.Equal(t, 50.0, *got.WorkHours)
	assert.Equal(t, 3, *got.StressSelfReport)
	assert.Equal(t, 5.0, *base.SleepHours, "overlay does not mutate the receiver")

	*changes.SleepHours = 1
	assert.Equal(t, 8.0, *got.SleepHours, "overlay copies values")
}

func TestMetricInput_IsEmpty(t *testing.T) {
	assert.True(t, MetricInput{}.IsEmpty())
	assert.False(t, MetricInput{SentimentScore: Float(0)}.IsEmpty())
}
