package extraction

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/equilibria/burnout-risk/internal/types"
)

// toneThreshold separates positive and negative tone from mixed.
const toneThreshold = 0.25

var positiveWords = map[string]bool{
	"good": true, "calm": true, "focused": true, "better": true,
	"productive": true, "confident": true, "rested": true, "happy": true,
}

var negativeWords = map[string]bool{
	"stressed": true, "anxious": true, "tired": true, "exhausted": true,
	"overwhelmed": true, "burned": true, "behind": true, "worried": true,
	"hate": true, "hating": true, "fucking": true, "fuck": true,
	"awful": true, "miserable": true, "hopeless": true, "depressed": true,
}

// LexiconExtractor estimates sentiment by counting cue words. It never reports
// behavioral metrics and needs no network access.
type LexiconExtractor struct{}

// NewLexiconExtractor creates a lexicon extractor.
func NewLexiconExtractor() *LexiconExtractor {
	return &LexiconExtractor{}
}

// ExtractMetrics scores the tone of text.
func (LexiconExtractor) ExtractMetrics(_ context.Context, text string) (*Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyJournal
	}

	pos, neg := countCues(text)
	total := max(1, pos+neg)
	sentiment := float64(pos-neg) / float64(total)
	sentiment = max(-1, min(1, sentiment))

	return &Extraction{
		Metrics:  types.MetricInput{SentimentScore: types.Float(sentiment)},
		Provider: ProviderLocal,
		Summary:  fmt.Sprintf("Journal tone appears %s. Positive cues: %d, negative cues: %d.", tone(sentiment), pos, neg),
	}, nil
}

// countCues tokenizes on anything that is not an ASCII letter.
func countCues(text string) (pos, neg int) {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r > unicode.MaxASCII || !unicode.IsLetter(r)
	})
	for _, token := range tokens {
		if positiveWords[token] {
			pos++
		}
		if negativeWords[token] {
			neg++
		}
	}
	return pos, neg
}

func tone(sentiment float64) string {
	switch {
	case sentiment > toneThreshold:
		return "positive"
	case sentiment < -toneThreshold:
		return "negative"
	default:
		return "mixed"
	}
}
