package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconExtractor(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		sentiment float64
		summary   string
	}{
		{
			name:      "negative",
			text:      "I'm exhausted and overwhelmed, so far behind.",
			sentiment: -1,
			summary:   "Journal tone appears negative. Positive cues: 0, negative cues: 3.",
		},
		{
			name:      "positive",
			text:      "Felt rested and focused today. Good day!",
			sentiment: 1,
			summary:   "Journal tone appears positive. Positive cues: 3, negative cues: 0.",
		},
		{
			name:      "mixed",
			text:      "Productive morning but tired by evening.",
			sentiment: 0,
			summary:   "Journal tone appears mixed. Positive cues: 1, negative cues: 1.",
		},
		{
			name:      "no cues",
			text:      "Went to the library.",
			sentiment: 0,
			summary:   "Journal tone appears mixed. Positive cues: 0, negative cues: 0.",
		},
		{
			name:      "case and punctuation",
			text:      "CALM. Calm? worried...",
			sentiment: 1.0 / 3.0,
			summary:   "Journal tone appears positive. Positive cues: 2, negative cues: 1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLexiconExtractor().ExtractMetrics(context.Background(), tt.text)
			require.NoError(t, err)

			assert.Equal(t, ProviderLocal, got.Provider)
			require.NotNil(t, got.Metrics.SentimentScore)
			assert.InDelta(t, tt.sentiment, *got.Metrics.SentimentScore, 1e-9)
			assert.Equal(t, tt.summary, got.Summary)
			assert.Nil(t, got.Metrics.SleepHours)
		})
	}
}

func TestLexiconExtractor_EmptyText(t *testing.T) {
	_, err := NewLexiconExtractor().ExtractMetrics(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyJournal)
}
