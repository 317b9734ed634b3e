package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/equilibria/burnout-risk/internal/config"
	"github.com/equilibria/burnout-risk/internal/llm"
	"github.com/equilibria/burnout-risk/internal/observability"
	"github.com/equilibria/burnout-risk/internal/schemas"
)

// Output formats
const (
	formatJSON = "json"
	formatText = "text"
)

// rootOptions holds persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// loadConfig merges the --config file over the environment and fills defaults.
func (o *rootOptions) loadConfig() (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger returns a JSON logger at the configured level.
func newLogger(cfg config.Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(cfg.Level())
	log.SetOutput(out)
	return log
}

// llmConfig applies the configured model override to the default model configuration.
func llmConfig(cfg config.Config) *llm.Config {
	c := llm.DefaultConfig()
	if cfg.GeminiModel != "" {
		c = c.WithModel(llm.TierStandard, cfg.GeminiModel)
	}
	return c
}

func validateFormat(format string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatText)
	}
	return nil
}

// emit writes v as indented JSON to outPath (or stdout), or renders it as text.
// JSON output is checked against schemaName when one is given; a mismatch is only a warning.
func emit(cmd *cobra.Command, format, outPath string, v any, schemaName string, text func(*observability.Printer)) error {
	if format == formatText {
		text(observability.NewPrinter(cmd.OutOrStdout()))
		return nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if schemaName != "" {
		if err := schemas.ValidateDocument(schemaName, data); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
		}
	}

	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(outPath)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outPath, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
	return nil
}
