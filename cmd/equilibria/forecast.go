package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/equilibria/burnout-risk/internal/forecast"
	"github.com/equilibria/burnout-risk/internal/observability"
	"github.com/equilibria/burnout-risk/internal/types"
	embedded "github.com/equilibria/burnout-risk/schemas"
)

type forecastOptions struct {
	scores []float64
	input  string
	format string
	out    string
}

func newForecastCmd() *cobra.Command {
	opts := &forecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast the next 14 days of risk",
		Long: `Fit a linear trend to past daily risk values (oldest first) and project it 14 days ahead
with an uncertainty band. At least two past values are required.`,
		Example: `  equilibria forecast --scores 0.2,0.3,0.4,0.5
  equilibria forecast --input history.json --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd, opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.scores, "scores", nil, "Comma-separated past risk values, oldest first")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", `Path to a JSON array of scores or {"past_scores": [...]}`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write JSON output to this file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("scores", "input")
	cmd.MarkFlagsOneRequired("scores", "input")
	return cmd
}

func runForecast(cmd *cobra.Command, opts *forecastOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	scores := opts.scores
	if opts.input != "" {
		var err error
		if scores, err = readScores(opts.input); err != nil {
			return err
		}
	}

	result, err := forecast.ForecastRisk(scores)
	if err != nil {
		return fmt.Errorf("failed to forecast: %w", err)
	}

	return emit(cmd, opts.format, opts.out, result, embedded.ForecastResult, func(p *observability.Printer) {
		p.PrintForecast(result)
	})
}

// readScores accepts either a bare array or a forecast request body.
func readScores(path string) ([]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	var scores []float64
	if err := json.Unmarshal(content, &scores); err == nil {
		return scores, nil
	}

	var req types.ForecastRequest
	if err := json.Unmarshal(content, &req); err != nil {
		return nil, fmt.Errorf(`failed to parse %s: expected an array of scores or {"past_scores": [...]}`, path)
	}
	return req.PastScores, nil
}
