package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/config"
	"github.com/HendryAvila/educhain-mcp/internal/llm"
	"github.com/HendryAvila/educhain-mcp/internal/logging"
	"github.com/HendryAvila/educhain-mcp/internal/pipeline"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "educhain-mcp",
		Short: "Educational content MCP server",
		Long: "educhain-mcp generates multiple-choice questions, lesson plans and flashcards\n" +
			"with a hosted model, caches them as JSON and serves them over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to a config file (default: ./educhain.yaml if present)")
	root.PersistentFlags().String("output-dir", "", "Directory for cached content (overrides output_dir)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads configuration and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger from cfg.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
}

// newPipeline builds the generation pipeline, failing fast when the
// provider is not configured.
func newPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pipeline.Pipeline, error) {
	if err := cfg.ValidateGeneration(); err != nil {
		return nil, fmt.Errorf("configuration missing: %w", err)
	}
	provider, err := llm.NewProvider(ctx, cfg.LLMProvider(), log.Named("llm"))
	if err != nil {
		return nil, err
	}
	return pipeline.New(provider, cfg.PipelineSettings(), log)
}
