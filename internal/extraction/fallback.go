package extraction

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// FallbackExtractor uses the primary extractor and switches to the fallback when it fails.
type FallbackExtractor struct {
	primary  Extractor
	fallback Extractor
	log      *logrus.Logger
}

// NewFallbackExtractor chains primary and fallback.
func NewFallbackExtractor(primary, fallback Extractor, log *logrus.Logger) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, fallback: fallback, log: log}
}

// ExtractMetrics tries the primary extractor first.
func (f *FallbackExtractor) ExtractMetrics(ctx context.Context, text string) (*Extraction, error) {
	result, err := f.primary.ExtractMetrics(ctx, text)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, ErrEmptyJournal) || ctx.Err() != nil {
		return nil, err
	}

	f.log.WithError(err).Warn("Primary extractor failed, falling back")
	return f.fallback.ExtractMetrics(ctx, text)
}
