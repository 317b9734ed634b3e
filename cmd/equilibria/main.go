// Package main provides the entry point for the Equilibria burnout risk CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "equilibria",
		Short: "Burnout risk scoring and trend forecasting",
		Long: `Equilibria scores burnout risk from daily wellbeing signals (sleep, deadlines, workload,
stress and journal sentiment), explains the strongest drivers and forecasts the next two weeks.

Configuration can be loaded from a JSON file using --config. Command-line flags override config
file values, and config file values override the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.AddCommand(
		newServeCmd(opts),
		newScoreCmd(),
		newForecastCmd(),
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
