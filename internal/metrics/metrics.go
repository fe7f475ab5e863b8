// Package metrics records per-run pipeline metrics and writes them in the
// Prometheus text format, for collection by node_exporter's textfile
// collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"forum-sentiment/internal/types"
)

// Run holds the metrics of a single pipeline run on its own registry
type Run struct {
	registry *prometheus.Registry

	ItemsCollected   *prometheus.GaugeVec
	ItemsMatched     prometheus.Gauge
	EntityMentions   *prometheus.GaugeVec
	EntitySentiment  *prometheus.GaugeVec
	StageDuration    *prometheus.GaugeVec
	LastRunTimestamp prometheus.Gauge
}

// New creates and registers the run metrics
func New(subreddit string) *Run {
	labels := prometheus.Labels{"subreddit": subreddit}

	r := &Run{
		registry: prometheus.NewRegistry(),

		ItemsCollected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "forum_sentiment_items_collected",
				Help:        "Unique posts and comments collected in the last run",
				ConstLabels: labels,
			},
			[]string{"kind"}, // kind: post|comment
		),
		ItemsMatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "forum_sentiment_items_matched",
			Help:        "Items mentioning at least one tracked entity",
			ConstLabels: labels,
		}),
		EntityMentions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "forum_sentiment_entity_mentions",
				Help:        "Mentions per tracked entity in the last run",
				ConstLabels: labels,
			},
			[]string{"entity"},
		),
		EntitySentiment: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "forum_sentiment_entity_average_sentiment",
				Help:        "Average compound sentiment per tracked entity (-1 to 1)",
				ConstLabels: labels,
			},
			[]string{"entity"},
		),
		StageDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "forum_sentiment_stage_duration_seconds",
				Help:        "Wall time of each pipeline stage",
				ConstLabels: labels,
			},
			[]string{"stage"},
		),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "forum_sentiment_last_run_timestamp",
			Help:        "Unix timestamp of the last completed run",
			ConstLabels: labels,
		}),
	}

	r.registry.MustRegister(
		r.ItemsCollected,
		r.ItemsMatched,
		r.EntityMentions,
		r.EntitySentiment,
		r.StageDuration,
		r.LastRunTimestamp,
	)
	return r
}

// ObserveItems counts collected items by kind
func (r *Run) ObserveItems(items []types.RawItem) {
	counts := map[types.ItemKind]int{types.KindPost: 0, types.KindComment: 0}
	for _, it := range items {
		counts[it.Kind]++
	}
	for kind, n := range counts {
		r.ItemsCollected.WithLabelValues(string(kind)).Set(float64(n))
	}
}

// ObserveStage records how long a stage took
func (r *Run) ObserveStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// ObserveSummaries records the per-entity results and marks the run complete
func (r *Run) ObserveSummaries(summaries []types.EntitySummary, at time.Time) {
	for _, s := range summaries {
		r.EntityMentions.WithLabelValues(s.Entity).Set(float64(s.MentionCount))
		r.EntitySentiment.WithLabelValues(s.Entity).Set(s.AverageSentiment)
	}
	r.LastRunTimestamp.Set(float64(at.Unix()))
}

// Registry exposes the underlying registry
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile atomically writes the metrics to path
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
