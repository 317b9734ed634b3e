package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/equilibria/burnout-risk/internal/observability"
	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
	embedded "github.com/equilibria/burnout-risk/schemas"
)

type scoreOptions struct {
	input         string
	scenario      string
	sleepHours    float64
	deadlines     int
	workHours     float64
	stress        int
	sentiment     float64
	noRenormalize bool
	format        string
	out           string
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score burnout risk for one record",
		Long: `Score burnout risk from any subset of the five signals. Metrics are layered: a named
--scenario first, then the --input JSON file, then individual metric flags. Signals that are
not given are left out of the score rather than treated as zero.`,
		Example: `  equilibria score --sleep-hours 5 --stress 8
  equilibria score --scenario midterms --sleep-hours 7 --format text
  equilibria score --input metrics.json --no-renormalize`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to a MetricInput JSON file")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", fmt.Sprintf("Start from a sample profile %v", risk.ScenarioNames()))
	cmd.Flags().Float64Var(&opts.sleepHours, "sleep-hours", 0, "Hours slept last night")
	cmd.Flags().IntVar(&opts.deadlines, "deadlines", 0, "Deadlines in the next 7 days")
	cmd.Flags().Float64Var(&opts.workHours, "work-hours", 0, "Weekly study or work hours")
	cmd.Flags().IntVar(&opts.stress, "stress", 0, "Self-reported stress, 1 to 10")
	cmd.Flags().Float64Var(&opts.sentiment, "sentiment", 0, "Journal sentiment, -1 to 1")
	cmd.Flags().BoolVar(&opts.noRenormalize, "no-renormalize", false, "Keep the weight of missing signals instead of rescaling present ones")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write JSON output to this file instead of stdout")
	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	in, err := opts.metrics(cmd.Flags())
	if err != nil {
		return err
	}

	result, err := risk.CalculateRiskWithOptions(in, risk.Options{Renormalize: !opts.noRenormalize})
	if err != nil {
		return fmt.Errorf("failed to score metrics: %w", err)
	}

	return emit(cmd, opts.format, opts.out, result, embedded.RiskResult, func(p *observability.Printer) {
		p.PrintRiskResult(result)
	})
}

// metrics layers the scenario, the input file and the explicitly set flags.
func (o *scoreOptions) metrics(flags *pflag.FlagSet) (types.MetricInput, error) {
	var in types.MetricInput

	if o.scenario != "" {
		profile, err := risk.Scenario(o.scenario)
		if err != nil {
			return types.MetricInput{}, err
		}
		in = profile
	}

	if o.input != "" {
		content, err := os.ReadFile(o.input)
		if err != nil {
			return types.MetricInput{}, fmt.Errorf("failed to read input file %s: %w", o.input, err)
		}
		var fromFile types.MetricInput
		if err := json.Unmarshal(content, &fromFile); err != nil {
			return types.MetricInput{}, fmt.Errorf("failed to unmarshal metrics JSON: %w", err)
		}
		in = in.Overlay(fromFile)
	}

	var fromFlags types.MetricInput
	if flags.Changed("sleep-hours") {
		fromFlags.SleepHours = types.Float(o.sleepHours)
	}
	if flags.Changed("deadlines") {
		fromFlags.DeadlinesNext7Days = types.Int(o.deadlines)
	}
	if flags.Changed("work-hours") {
		fromFlags.WorkHours = types.Float(o.workHours)
	}
	if flags.Changed("stress") {
		fromFlags.StressSelfReport = types.Int(o.stress)
	}
	if flags.Changed("sentiment") {
		fromFlags.SentimentScore = types.Float(o.sentiment)
	}
	return in.Overlay(fromFlags), nil
}
