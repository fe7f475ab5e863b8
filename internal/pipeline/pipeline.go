// Package pipeline runs one end-to-end analysis: fetch listings, collect
// items, normalize, match entities, score, aggregate and report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forum-sentiment/internal/aggregate"
	"forum-sentiment/internal/collector"
	"forum-sentiment/internal/entity"
	"forum-sentiment/internal/interfaces"
	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/metrics"
	"forum-sentiment/internal/report"
	"forum-sentiment/internal/sentiment"
	"forum-sentiment/internal/textnorm"
	"forum-sentiment/internal/types"
)

// Normal early exits: nothing is reported and the run is not a failure
var (
	ErrNoItems    = errors.New("no items collected")
	ErrNoMentions = errors.New("no tracked entities mentioned")
)

// Options are the run parameters
type Options struct {
	Subreddit       string
	HotLimit        int
	TopLimit        int
	TopPeriod       string
	CommentsPerPost int
}

// PostEnricher fills in bodies of link posts before collection
type PostEnricher interface {
	EnrichPosts(ctx context.Context, posts []types.RawPost) []types.RawPost
}

// Pipeline wires the stages of a run
type Pipeline struct {
	client   interfaces.ForumClient
	vocab    *entity.Vocabulary
	scorer   interfaces.Scorer
	reporter *report.Reporter
	opts     Options

	enricher PostEnricher
	metrics  *metrics.Run
}

// Option configures optional pipeline stages
type Option func(*Pipeline)

// WithEnricher enables link-post enrichment
func WithEnricher(e PostEnricher) Option {
	return func(p *Pipeline) {
		p.enricher = e
	}
}

// WithMetrics records run metrics into m
func WithMetrics(m *metrics.Run) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New creates a pipeline. reporter may be nil to skip writing files.
func New(client interfaces.ForumClient, vocab *entity.Vocabulary, scorer interfaces.Scorer, reporter *report.Reporter, opts Options, options ...Option) *Pipeline {
	p := &Pipeline{
		client:   client,
		vocab:    vocab,
		scorer:   scorer,
		reporter: reporter,
		opts:     opts,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Result is everything a successful run produced
type Result struct {
	Items     []types.RawItem
	Scored    []types.ScoredItem
	Summaries []types.EntitySummary
	Report    report.Result
	Duration  time.Duration
}

// Run executes the pipeline once. It returns ErrNoItems or ErrNoMentions
// when there is nothing to report; no files are written in that case.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	hot, top, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if p.enricher != nil {
		timer := logger.StartOperation(ctx, "pipeline.enrich")
		hot = p.enricher.EnrichPosts(timer.GetContext(), hot)
		top = p.enricher.EnrichPosts(timer.GetContext(), top)
		p.observeStage("enrich", timer.End())
	}

	timer := logger.StartOperation(ctx, "pipeline.collect", "hot", len(hot), "top", len(top))
	items := collector.New(p.client, p.opts.CommentsPerPost).Collect(timer.GetContext(), hot, top)
	p.observeStage("collect", timer.End("items", len(items)))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection cancelled: %w", err)
	}
	if p.metrics != nil {
		p.metrics.ObserveItems(items)
	}

	logger.Info(ctx, "Collected unique items", "items", len(items))
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	timer = logger.StartOperation(ctx, "pipeline.analyze", "items", len(items))
	matched := Analyze(items, p.vocab)
	if p.metrics != nil {
		p.metrics.ItemsMatched.Set(float64(len(matched)))
	}
	if len(matched) == 0 {
		timer.End("matched", 0)
		return nil, ErrNoMentions
	}

	scored := sentiment.ScoreItems(p.scorer, matched)
	summaries := aggregate.Summarize(scored)
	p.observeStage("analyze", timer.End("matched", len(matched), "entities", len(summaries)))

	for _, s := range summaries {
		logger.EntitySentiment(ctx, s.Entity, s.MentionCount, s.AverageSentiment, s.Qualitative,
			"positive", s.PositiveCount,
			"negative", s.NegativeCount,
			"neutral", s.NeutralCount,
		)
	}

	res := &Result{
		Items:     items,
		Scored:    scored,
		Summaries: summaries,
	}

	now := time.Now()
	if p.reporter != nil {
		res.Report = p.reporter.Write(ctx, report.Meta{
			Subreddit:   p.opts.Subreddit,
			StartedAt:   start,
			GeneratedAt: now,
			HotLimit:    p.opts.HotLimit,
			TopLimit:    p.opts.TopLimit,
			TopPeriod:   p.opts.TopPeriod,
			TotalItems:  len(items),
		}, summaries)
	}
	if p.metrics != nil {
		p.metrics.ObserveSummaries(summaries, now)
	}

	res.Duration = time.Since(start)
	return res, nil
}

// fetch loads the hot and top listings. Either failing aborts the run.
func (p *Pipeline) fetch(ctx context.Context) (hot, top []types.RawPost, err error) {
	timer := logger.StartOperation(ctx, "pipeline.fetch", "subreddit", p.opts.Subreddit)
	ctx = timer.GetContext()

	if p.opts.HotLimit > 0 {
		hot, err = p.client.ListHot(ctx, p.opts.Subreddit, p.opts.HotLimit)
		if err != nil {
			timer.EndWithError(err)
			return nil, nil, fmt.Errorf("failed to fetch hot posts: %w", err)
		}
	}
	if p.opts.TopLimit > 0 {
		top, err = p.client.ListTop(ctx, p.opts.Subreddit, p.opts.TopPeriod, p.opts.TopLimit)
		if err != nil {
			timer.EndWithError(err)
			return nil, nil, fmt.Errorf("failed to fetch top posts: %w", err)
		}
	}

	p.observeStage("fetch", timer.End("hot", len(hot), "top", len(top)))
	return hot, top, nil
}

func (p *Pipeline) observeStage(stage string, d time.Duration) {
	if p.metrics != nil {
		p.metrics.ObserveStage(stage, d)
	}
}

// Analyze normalizes every item and keeps those mentioning at least one
// vocabulary entity. Order is preserved.
func Analyze(items []types.RawItem, vocab *entity.Vocabulary) []types.NormalizedItem {
	matched := make([]types.NormalizedItem, 0)
	for _, item := range items {
		n := Normalize(item, vocab)
		if len(n.MatchedEntities) > 0 {
			matched = append(matched, n)
		}
	}
	return matched
}

// Normalize builds the full and cleaned text of an item and matches entities
func Normalize(item types.RawItem, vocab *entity.Vocabulary) types.NormalizedItem {
	title := ""
	if item.Title != nil {
		title = *item.Title
	}
	fullText := title + " " + item.Body

	cleaned := textnorm.Normalize(fullText)
	return types.NormalizedItem{
		RawItem:         item,
		FullText:        fullText,
		CleanedText:     cleaned,
		MatchedEntities: entity.FindEntities(cleaned, vocab),
	}
}
