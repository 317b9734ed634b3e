// Package batch scores many metric records in parallel for offline analysis.
package batch

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

// Record is one input row. ID is an optional caller-supplied label.
type Record struct {
	ID string `json:"id,omitempty"`
	types.MetricInput
}

// Outcome is the score or error for the record at Index.
type Outcome struct {
	Index  int               `json:"index"`
	ID     string            `json:"id,omitempty"`
	Result *types.RiskResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Scored   int `json:"scored"`
	Failed   int `json:"failed"`
	HighRisk int `json:"high_risk"`
}

// Score scores records with at most workers running at once. A record that cannot be
// scored is reported in its Outcome and does not stop the batch; only cancellation does.
// Outcomes are in input order.
func Score(ctx context.Context, records []Record, workers int, opts risk.Options) ([]Outcome, error) {
	if workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}

	outcomes := make([]Outcome, len(records))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, record := range records {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			outcome := Outcome{Index: i, ID: record.ID}
			result, err := risk.CalculateRiskWithOptions(record.MetricInput, opts)
			if err != nil {
				outcome.Error = err.Error()
			} else {
				outcome.Result = result
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summarize counts scored, failed and high-risk outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		if o.Result == nil {
			s.Failed++
			continue
		}
		s.Scored++
		if risk.StatusFor(o.Result.BurnoutProbability) == types.StatusHigh {
			s.HighRisk++
		}
	}
	return s
}
