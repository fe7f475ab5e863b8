package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"forum-sentiment/internal/aggregate"
	"forum-sentiment/internal/enrich"
	"forum-sentiment/internal/entity"
	"forum-sentiment/internal/itemlog"
	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/metrics"
	"forum-sentiment/internal/pipeline"
	"forum-sentiment/internal/reddit"
	"forum-sentiment/internal/reddit/redditobs"
	"forum-sentiment/internal/report"
	"forum-sentiment/internal/sentiment"
	"forum-sentiment/internal/store"
	"forum-sentiment/internal/trace"
)

// initializeSystem loads the environment and sets up logging and tracing
func initializeSystem(envFile string) error {
	if err := store.LoadEnvFile(envFile); err != nil {
		return err
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads the config and applies command-line overrides
func loadConfig(ctx context.Context, path, outDir string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	return cfg, nil
}

// buildPipeline connects to Reddit and assembles the run
func buildPipeline(ctx context.Context, cfg *store.Config) (*pipeline.Pipeline, *metrics.Run, error) {
	vocab, err := entity.NewVocabulary(cfg.Vocabulary.Entities)
	if err != nil {
		return nil, nil, err
	}
	checkInstruments(ctx, cfg, vocab)

	creds, err := store.LoadCredentials()
	if err != nil {
		return nil, nil, err
	}

	client := reddit.NewClient(
		reddit.WithAuthURL(cfg.Reddit.AuthURL),
		reddit.WithBaseURL(cfg.Reddit.APIURL),
		reddit.WithTimeout(time.Duration(cfg.Reddit.TimeoutSeconds)*time.Second),
		reddit.WithRateLimit(cfg.Reddit.RequestsPerMinute),
	)
	if err := client.Connect(ctx, reddit.Credentials{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		UserAgent:    creds.UserAgent,
		Username:     creds.Username,
		Password:     creds.Password,
	}); err != nil {
		return nil, nil, err
	}

	scorer := sentiment.NewVader()
	if len(cfg.Vocabulary.Lexicon) > 0 {
		scorer = scorer.WithTerms(cfg.Vocabulary.Lexicon)
	}

	reporter := report.NewReporter(cfg.Output.Dir, cfg.Output.CSVFile, cfg.Output.MarkdownFile, cfg.Output.HTMLFile)

	var opts []pipeline.Option
	if cfg.Enrich.Enabled {
		opts = append(opts, pipeline.WithEnricher(
			enrich.New(time.Duration(cfg.Enrich.TimeoutSeconds)*time.Second, cfg.Enrich.MaxChars),
		))
	}
	var m *metrics.Run
	if cfg.Output.MetricsFile != "" {
		m = metrics.New(cfg.Subreddit)
		opts = append(opts, pipeline.WithMetrics(m))
	}

	p := pipeline.New(redditobs.Wrap(client), vocab, scorer, reporter, pipeline.Options{
		Subreddit:       cfg.Subreddit,
		HotLimit:        cfg.Limits.HotPosts,
		TopLimit:        cfg.Limits.TopPosts,
		TopPeriod:       cfg.Limits.TopPeriod,
		CommentsPerPost: cfg.Limits.CommentsPerPost,
	}, opts...)

	return p, m, nil
}

// checkInstruments compares the vocabulary with the exchange instrument
// master when enabled and Kite credentials are available. Informational only.
func checkInstruments(ctx context.Context, cfg *store.Config, vocab *entity.Vocabulary) {
	if !cfg.Vocabulary.ValidateInstruments {
		return
	}
	kite := store.LoadKiteCredentials()
	if !kite.Configured() {
		logger.Warn(ctx, "Instrument check enabled but KITE_API_KEY/KITE_ACCESS_TOKEN are not set, skipping")
		return
	}

	lister := entity.NewKiteInstrumentLister(kite.APIKey, kite.AccessToken)
	if _, err := entity.CheckInstruments(ctx, lister, cfg.Vocabulary.Exchange, vocab); err != nil {
		logger.Warn(ctx, "Instrument check failed", "error", err)
	}
}

func writeMetrics(ctx context.Context, cfg *store.Config, m *metrics.Run) {
	if m == nil {
		return
	}
	path := filepath.Join(cfg.Output.Dir, cfg.Output.MetricsFile)
	if err := m.WriteTextfile(path); err != nil {
		logger.ErrorWithErr(ctx, "Failed to write metrics", err, "path", path)
		return
	}
	logger.Info(ctx, "Metrics written", "path", path)
}

// writeItemLog appends the run's scored items and compresses old day files
func writeItemLog(ctx context.Context, cfg *store.Config, runID string, res *pipeline.Result) {
	if cfg.Output.ItemsDir == "" {
		return
	}
	dir := cfg.Output.ItemsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.Output.Dir, dir)
	}

	l := itemlog.New(dir)
	path, err := l.Append(runID, res.Scored)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to write item log", err, "dir", dir)
		return
	}
	logger.Info(ctx, "Scored items logged", "path", path, "items", len(res.Scored))

	if n, err := l.CompressOlder(cfg.Output.ItemsRetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old item logs", "error", err)
	} else if n > 0 {
		logger.Info(ctx, "Compressed old item logs", "files", n)
	}
}

func printSummary(res *pipeline.Result) {
	fmt.Printf("\nAnalyzed %s unique items, %s mentions across %d entities\n",
		humanize.Comma(int64(len(res.Items))),
		humanize.Comma(int64(aggregate.TotalMentions(res.Summaries))),
		len(res.Summaries),
	)
	for _, path := range res.Report.Written() {
		fmt.Printf("  saved %s\n", path)
	}
}

// printFooter prints the total time and the disclaimer reminder
func printFooter(start time.Time, reportPath string) {
	fmt.Printf("\nFinished. Total execution time: %.2f seconds.\n", time.Since(start).Seconds())
	if reportPath == "" {
		return
	}
	fmt.Println("\n************************************************************")
	fmt.Println("Remember: This is NOT financial advice. Please read the")
	fmt.Printf("full disclaimer in the generated report '%s'.\n", reportPath)
	fmt.Println("************************************************************")
}
