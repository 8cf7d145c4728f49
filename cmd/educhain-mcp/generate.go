package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/cache"
	"github.com/HendryAvila/educhain-mcp/internal/pipeline"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate content and write it to the cache",
		Long: "Generates ten multiple-choice questions, a sixty-minute beginner lesson plan\n" +
			"and ten flashcards for the default topic and saves them under the output\n" +
			"directory. Kinds that cannot be generated are saved as fallback content.",
		RunE: runGenerate,
	}
	cmd.Flags().String("topic", "", "Topic to generate for (default: default_topic); the server only serves cached content whose topic is its default_topic")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = cfg.DefaultTopic
	}
	if topic != cfg.DefaultTopic {
		log.Warn("generating for a topic other than default_topic; serve with the same default_topic to use this content",
			zap.String("topic", topic),
			zap.String("default_topic", cfg.DefaultTopic),
		)
	}

	log.Info("starting content generation",
		zap.String("topic", topic),
		zap.String("model", p.Model()),
		zap.String("output_dir", cfg.OutputDir),
		zap.Stringer("pipeline", cfg.PipelineSettings()),
	)

	store := cache.NewFileStore(cfg.OutputDir, log)
	results := p.RunBatch(ctx, store, pipeline.DefaultRequests(topic))

	out := cmd.OutOrStdout()
	for _, r := range results {
		status := "saved"
		if r.SaveErr != nil {
			status = "not saved: " + r.SaveErr.Error()
		}
		fmt.Fprintf(out, "%-12s %-8s %3d items  %s\n", r.Kind, r.GeneratedBy, r.Items, status)
	}
	fmt.Fprintf(out, "Content written to %s\n", store.Dir())
	return nil
}
