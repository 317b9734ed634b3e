package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/equilibria/burnout-risk/internal/config"
	"github.com/equilibria/burnout-risk/internal/db"
	"github.com/equilibria/burnout-risk/internal/extraction"
	"github.com/equilibria/burnout-risk/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that scores check-ins, stores history per anonymous session and
serves dashboards. Requires DATABASE_URL and JWT_SECRET. GEMINI_API_KEY enables model-based
journal extraction; without it journals are analyzed locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	log := newLogger(cfg, os.Stderr)

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return err
	}

	extractor, closeExtractor, err := extraction.New(ctx, cfg.APIKey, llmConfig(cfg), log)
	if err != nil {
		database.Close()
		return err
	}
	defer func() {
		if err := closeExtractor(); err != nil {
			log.WithError(err).Warn("Failed to close LLM client")
		}
	}()

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		PulseTTL:      cfg.PulseTTLDuration(),
		PruneSchedule: cfg.PruneSchedule,
	}, database, extractor, server.NewJWTService(jwtConfig), log)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
