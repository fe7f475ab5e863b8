package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/pipeline"
	"forum-sentiment/internal/trace"
)

type options struct {
	Config  string `long:"config" short:"c" env:"FORUM_SENTIMENT_CONFIG" default:"config.yaml" description:"Path to the YAML config file"`
	EnvFile string `long:"env-file" default:".env" description:"Optional .env file with Reddit credentials"`
	OutDir  string `long:"out-dir" short:"o" description:"Directory for report files (overrides output.dir)"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	start := time.Now()

	if err := initializeSystem(opts.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer func() {
		if err := trace.Shutdown(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to flush traces: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)

	cfg, err := loadConfig(ctx, opts.Config, opts.OutDir)
	if err != nil {
		return 1
	}

	p, m, err := buildPipeline(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Startup failed", err)
		return 1
	}

	logger.Info(ctx, "Starting sentiment run",
		"subreddit", cfg.Subreddit,
		"hot", cfg.Limits.HotPosts,
		"top", cfg.Limits.TopPosts,
		"top_period", cfg.Limits.TopPeriod,
		"entities", len(cfg.Vocabulary.Entities),
	)

	res, err := p.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrNoItems), errors.Is(err, pipeline.ErrNoMentions):
		logger.Info(ctx, "Nothing to report", "reason", err.Error())
		printFooter(start, "")
		return 0
	case err != nil:
		logger.ErrorWithErr(ctx, "Run failed", err)
		return 1
	}

	writeMetrics(ctx, cfg, m)
	writeItemLog(ctx, cfg, runID, res)
	printSummary(res)
	printFooter(start, res.Report.MarkdownPath)

	if len(res.Report.Errors) > 0 {
		return 1
	}
	return 0
}
