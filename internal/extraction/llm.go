package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/equilibria/burnout-risk/internal/llm"
	"github.com/equilibria/burnout-risk/internal/schemas"
	"github.com/equilibria/burnout-risk/internal/types"
	embedded "github.com/equilibria/burnout-risk/schemas"
)

// ErrExtractionParse is wrapped by ParseError.
var ErrExtractionParse = errors.New("extraction output is not a JSON object")

// ParseError reports model output that could not be decoded.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse extraction output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrExtractionParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrExtractionParse
}

// LLMExtractor asks a language model for the metrics stated in a journal entry.
type LLMExtractor struct {
	client llm.Client
	log    *logrus.Logger
}

// NewLLMExtractor creates an extractor backed by client.
func NewLLMExtractor(client llm.Client, log *logrus.Logger) *LLMExtractor {
	return &LLMExtractor{client: client, log: log}
}

// ExtractMetrics sends the journal to the model and normalizes its answer.
// Unparseable output degrades to a neutral sentiment; transport errors are returned.
func (e *LLMExtractor) ExtractMetrics(ctx context.Context, text string) (*Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyJournal
	}

	raw, err := e.client.Extract(ctx, llm.JournalMetricsSchema(), text, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to extract metrics: %w", err)
	}

	metrics, err := ParseMetrics(raw)
	if err != nil {
		e.log.WithError(err).WithField("model", e.client.GetModel(llm.TierStandard)).
			Warn("Extraction output unreadable, using neutral sentiment")
		metrics = types.MetricInput{SentimentScore: types.Float(0)}
	}

	return &Extraction{Metrics: metrics, Provider: ProviderGemini}, nil
}

// ParseMetrics decodes model output into metrics. Fields that fail the extraction
// schema or the normalization rules are dropped individually; sentiment defaults to 0.
func ParseMetrics(raw string) (types.MetricInput, error) {
	cleaned := llm.CleanJSONBlock(raw)

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()
	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return types.MetricInput{}, &ParseError{Raw: raw, Err: errors.Join(ErrExtractionParse, err)}
	}
	if fields == nil {
		return types.MetricInput{}, &ParseError{Raw: raw, Err: ErrExtractionParse}
	}

	if err := schemas.ValidateDocument(embedded.MetricExtraction, []byte(cleaned)); err != nil {
		var validationErr *schemas.ValidationError
		if !errors.As(err, &validationErr) {
			return types.MetricInput{}, err
		}
		for _, field := range validationErr.Fields() {
			delete(fields, field)
		}
	}

	return normalize(fields), nil
}

func normalize(fields map[string]any) types.MetricInput {
	var out types.MetricInput

	if v, ok := number(fields["sleep_hours"]); ok {
		out.SleepHours = types.Float(v)
	}
	if v, ok := number(fields["deadlines_next_7_days"]); ok && isInteger(v) && v >= 0 {
		out.DeadlinesNext7Days = types.Int(int(math.Min(v, math.MaxInt32)))
	}
	if v, ok := number(fields["work_hours"]); ok {
		out.WorkHours = types.Float(v)
	}
	if v, ok := number(fields["stress_self_report"]); ok && isInteger(v) && v >= 1 && v <= 10 {
		out.StressSelfReport = types.Int(int(v))
	}

	sentiment, ok := number(fields["sentiment_score"])
	if !ok {
		sentiment = 0
	}
	out.SentimentScore = types.Float(math.Max(-1, math.Min(1, sentiment)))

	return out
}

func number(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isInteger(v float64) bool {
	return v == math.Trunc(v)
}
