package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/cache"
	"github.com/HendryAvila/educhain-mcp/internal/resources"
	"github.com/HendryAvila/educhain-mcp/internal/server"
	"github.com/HendryAvila/educhain-mcp/internal/tools"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE:  runServe,
	}
	cmd.Flags().Bool("strict", false, "Exit with an error when cached content files are missing")
	cmd.Flags().Bool("live", false, "Generate content live for cache misses and other topics")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Server.Strict, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("live") {
		cfg.Server.LiveGeneration, _ = cmd.Flags().GetBool("live")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := cache.NewFileStore(cfg.OutputDir, log)

	missing, err := server.CheckPrerequisites(store, log)
	if err != nil {
		return err
	}
	if len(missing) > 0 && cfg.Server.Strict {
		return fmt.Errorf("strict mode: %d content file(s) missing, run 'educhain-mcp generate' first", len(missing))
	}

	var gen tools.Generator
	if cfg.Server.LiveGeneration {
		p, err := newPipeline(ctx, cfg, log)
		if err != nil {
			return err
		}
		gen = p
	}

	s, err := server.New(server.Deps{
		Store:        store,
		Generator:    gen,
		DefaultTopic: cfg.DefaultTopic,
		Log:          log,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logBanner(log, cfg.OutputDir, len(missing) == 0, gen != nil)

	stdio := mcpserver.NewStdioServer(s)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// logBanner records what the server exposes once startup is complete.
func logBanner(log *zap.Logger, outputDir string, ready, live bool) {
	log.Info("starting MCP server",
		zap.String("name", server.Name),
		zap.String("version", server.Version),
		zap.String("output_dir", outputDir),
		zap.Bool("prerequisites_met", ready),
		zap.Bool("live_generation", live),
		zap.Strings("tools", tools.Names),
		zap.Strings("resources", resources.URIs()),
	)
}
