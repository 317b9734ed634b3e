package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/equilibria/burnout-risk/internal/batch"
	"github.com/equilibria/burnout-risk/internal/observability"
	"github.com/equilibria/burnout-risk/internal/risk"
)

type batchOptions struct {
	input         string
	out           string
	workers       int
	noRenormalize bool
	format        string
}

// batchOutput is the JSON document written by the batch command.
type batchOutput struct {
	Summary  batch.Summary   `json:"summary"`
	Outcomes []batch.Outcome `json:"outcomes"`
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score many records from a CSV or JSON file",
		Long: `Score every record in a CSV file (header row with id and metric column names) or a JSON
array / JSON Lines file of metric objects. Records are scored in parallel; a record that
cannot be scored is reported with its error and does not stop the batch.`,
		Example: `  equilibria batch --input cohort.csv --out scores.json
  equilibria batch --input week.jsonl --workers 8 --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.BatchWorkers
			}
			return runBatch(cmd, newLogger(cfg, cmd.ErrOrStderr()), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to input .csv, .json or .jsonl file (required)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write JSON output to this file instead of stdout")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Parallel scorers (default from config)")
	cmd.Flags().BoolVar(&opts.noRenormalize, "no-renormalize", false, "Keep the weight of missing signals instead of rescaling present ones")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")

	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	return cmd
}

func runBatch(cmd *cobra.Command, log *logrus.Logger, opts *batchOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	records, err := batch.ReadFile(opts.input)
	if err != nil {
		return err
	}

	outcomes, err := batch.Score(cmd.Context(), records, opts.workers, risk.Options{Renormalize: !opts.noRenormalize})
	if err != nil {
		return fmt.Errorf("batch scoring failed: %w", err)
	}
	summary := batch.Summarize(outcomes)

	log.WithFields(logrus.Fields{
		"input":     opts.input,
		"records":   len(records),
		"workers":   opts.workers,
		"failed":    summary.Failed,
		"high_risk": summary.HighRisk,
	}).Info("Batch scored")

	if outcomes == nil {
		outcomes = []batch.Outcome{}
	}
	return emit(cmd, opts.format, opts.out, batchOutput{Summary: summary, Outcomes: outcomes}, "", func(p *observability.Printer) {
		p.PrintBatchSummary(summary.Scored, summary.Failed, summary.HighRisk)
	})
}
