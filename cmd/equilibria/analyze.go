package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equilibria/burnout-risk/internal/extraction"
	"github.com/equilibria/burnout-risk/internal/observability"
	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

type analyzeOptions struct {
	text   string
	file   string
	score  bool
	format string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract wellbeing metrics from a journal entry",
		Long: `Read sentiment and any mentioned sleep, workload, deadlines or stress from free-form
journal text. Uses Gemini when GEMINI_API_KEY is set and falls back to local analysis.
Pass --file - to read the entry from stdin.`,
		Example: `  equilibria analyze --text "Slept 5 hours, three deadlines this week, exhausted"
  echo "calm and focused" | equilibria analyze --file - --score`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}

			text, err := opts.journal(cmd.InOrStdin())
			if err != nil {
				return err
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			extractor, closeExtractor, err := extraction.New(cmd.Context(), cfg.APIKey, llmConfig(cfg), log)
			if err != nil {
				return err
			}
			defer func() { _ = closeExtractor() }()

			return runAnalyze(cmd, extractor, text, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Journal entry text")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path to a journal entry file, or - for stdin")
	cmd.Flags().BoolVar(&opts.score, "score", false, "Also score the extracted metrics")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkFlagsOneRequired("text", "file")
	return cmd
}

func (o *analyzeOptions) journal(stdin io.Reader) (string, error) {
	switch o.file {
	case "":
		return o.text, nil
	case "-":
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read journal from stdin: %w", err)
		}
		return string(content), nil
	default:
		content, err := os.ReadFile(o.file)
		if err != nil {
			return "", fmt.Errorf("failed to read journal file %s: %w", o.file, err)
		}
		return string(content), nil
	}
}

func runAnalyze(cmd *cobra.Command, extractor extraction.Extractor, text string, opts *analyzeOptions) error {
	extracted, err := extractor.ExtractMetrics(cmd.Context(), strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("failed to analyze journal: %w", err)
	}

	resp := &types.AnalyzeResponse{
		MetricInput: extracted.Metrics,
		Provider:    extracted.Provider,
		Summary:     extracted.Summary,
	}
	if opts.score {
		if resp.Result, err = risk.CalculateRisk(extracted.Metrics); err != nil {
			return fmt.Errorf("failed to score metrics: %w", err)
		}
	}

	return emit(cmd, opts.format, "", resp, "", func(p *observability.Printer) {
		p.PrintExtraction(resp)
		p.PrintRiskResult(resp.Result)
	})
}
