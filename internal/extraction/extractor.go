// Package extraction turns free-text journal entries into sparse wellbeing metrics.
package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/equilibria/burnout-risk/internal/llm"
	"github.com/equilibria/burnout-risk/internal/types"
)

// Provider names reported alongside an extraction.
const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// ErrEmptyJournal is returned when the journal text has no content.
var ErrEmptyJournal = errors.New("journal text is empty")

// Extraction is the result of reading a journal entry.
type Extraction struct {
	Metrics  types.MetricInput
	Provider string
	Summary  string
}

// Extractor reads wellbeing metrics out of a journal entry.
type Extractor interface {
	ExtractMetrics(ctx context.Context, text string) (*Extraction, error)
}

// New builds the extractor used by the service. Without an API key only the
// lexicon extractor is available. The returned close function releases the model client.
func New(ctx context.Context, apiKey string, config *llm.Config, log *logrus.Logger) (Extractor, func() error, error) {
	lexicon := NewLexiconExtractor()
	if apiKey == "" {
		log.Info("No Gemini API key configured, using local journal analysis")
		return lexicon, func() error { return nil }, nil
	}

	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return NewFallbackExtractor(NewLLMExtractor(client, log), lexicon, log), client.Close, nil
}
