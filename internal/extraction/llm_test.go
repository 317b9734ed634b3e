package extraction

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibria/burnout-risk/internal/risk"
)

func TestParseMetrics(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		sleep     *float64
		deadlines *int
		work      *float64
		stress    *int
		sentiment float64
	}{
		{
			name:      "all fields",
			raw:       `{"sleep_hours": 5.5, "deadlines_next_7_days": 3, "work_hours": 40, "stress_self_report": 8, "sentiment_score": -0.6}`,
			sleep:     ptr(5.5),
			deadlines: ptr(3),
			work:      ptr(40.0),
			stress:    ptr(8),
			sentiment: -0.6,
		},
		{
			name:      "fenced with preamble",
			raw:       "Here is the JSON:\n```json\n{\"sentiment_score\": 0.4}\n```",
			sentiment: 0.4,
		},
		{
			name:      "sentiment missing defaults to neutral",
			raw:       `{"sleep_hours": 7}`,
			sleep:     ptr(7.0),
			sentiment: 0,
		},
		{
			name:      "sentiment clamped",
			raw:       `{"sentiment_score": -3}`,
			sentiment: -1,
		},
		{
			name:      "fractional deadlines dropped",
			raw:       `{"deadlines_next_7_days": 2.5, "sentiment_score": 0.1}`,
			sentiment: 0.1,
		},
		{
			name:      "negative deadlines dropped",
			raw:       `{"deadlines_next_7_days": -1, "sentiment_score": 0.1}`,
			sentiment: 0.1,
		},
		{
			name:      "huge deadlines capped",
			raw:       `{"deadlines_next_7_days": 1e20, "sentiment_score": 0}`,
			deadlines: ptr(math.MaxInt32),
			sentiment: 0,
		},
		{
			name:      "stress out of range dropped",
			raw:       `{"stress_self_report": 11, "sleep_hours": 6, "sentiment_score": 0}`,
			sleep:     ptr(6.0),
			sentiment: 0,
		},
		{
			name:      "non numeric values dropped",
			raw:       `{"sleep_hours": "about six", "work_hours": null, "sentiment_score": "bad"}`,
			sentiment: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetrics(tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.sleep, got.SleepHours)
			assert.Equal(t, tt.deadlines, got.DeadlinesNext7Days)
			assert.Equal(t, tt.work, got.WorkHours)
			assert.Equal(t, tt.stress, got.StressSelfReport)
			require.NotNil(t, got.SentimentScore)
			assert.InDelta(t, tt.sentiment, *got.SentimentScore, 1e-9)
		})
	}
}

func TestParseMetrics_HugeDeadlinesSaturateRisk(t *testing.T) {
	got, err := ParseMetrics(`{"deadlines_next_7_days": 1e20}`)
	require.NoError(t, err)

	result, err := risk.CalculateRisk(got)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Factors["deadlines"])
}

func TestParseMetrics_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "[1, 2, 3]", "null"} {
		_, err := ParseMetrics(raw)
		assert.ErrorIs(t, err, ErrExtractionParse, "raw=%q", raw)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	}
}

func TestLLMExtractor_ExtractMetrics(t *testing.T) {
	client := &fakeClient{response: `{"sleep_hours": 4, "stress_self_report": 9, "sentiment_score": -0.8}`}
	extractor := NewLLMExtractor(client, quietLogger())

	got, err := extractor.ExtractMetrics(context.Background(), "Slept 4 hours, stress is 9/10.")
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, got.Provider)
	assert.Equal(t, ptr(4.0), got.Metrics.SleepHours)
	assert.Equal(t, ptr(9), got.Metrics.StressSelfReport)
	assert.Nil(t, got.Metrics.WorkHours)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Slept 4 hours, stress is 9/10.")
}

func TestLLMExtractor_UnparseableOutputIsNeutral(t *testing.T) {
	client := &fakeClient{response: "I'm sorry, I can't help with that."}
	extractor := NewLLMExtractor(client, quietLogger())

	got, err := extractor.ExtractMetrics(context.Background(), "rough week")
	require.NoError(t, err)

	require.NotNil(t, got.Metrics.SentimentScore)
	assert.Equal(t, 0.0, *got.Metrics.SentimentScore)
	assert.Nil(t, got.Metrics.SleepHours)
}

func TestLLMExtractor_ClientError(t *testing.T) {
	boom := errors.New("quota exceeded")
	extractor := NewLLMExtractor(&fakeClient{err: boom}, quietLogger())

	_, err := extractor.ExtractMetrics(context.Background(), "rough week")
	assert.ErrorIs(t, err, boom)
}

func TestLLMExtractor_EmptyText(t *testing.T) {
	client := &fakeClient{}
	extractor := NewLLMExtractor(client, quietLogger())

	_, err := extractor.ExtractMetrics(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyJournal)
	assert.Empty(t, client.prompts)
}

func ptr[T any](v T) *T {
	return &v
}
