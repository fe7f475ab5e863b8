// Package aggregate turns scored items into per-entity summaries.
package aggregate

import (
	"sort"

	"forum-sentiment/internal/types"
)

// Qualitative tiers of an entity's average compound score
const (
	VeryPositive = "Very Positive"
	Positive     = "Positive"
	Neutral      = "Neutral"
	Negative     = "Negative"
	VeryNegative = "Very Negative"
)

type bucket struct {
	sum      float64
	count    int
	positive int
	negative int
	neutral  int
}

// Summarize explodes every scored item into one mention per matched entity
// and groups the mentions by entity. The result is ordered by mention count
// descending, then entity symbol ascending. Items without entities
// contribute nothing.
func Summarize(items []types.ScoredItem) []types.EntitySummary {
	buckets := make(map[string]*bucket)

	for _, item := range items {
		for _, entity := range item.MatchedEntities {
			b, ok := buckets[entity]
			if !ok {
				b = &bucket{}
				buckets[entity] = b
			}
			b.sum += item.SentimentScore
			b.count++
			switch item.SentimentLabel {
			case types.LabelPositive:
				b.positive++
			case types.LabelNegative:
				b.negative++
			default:
				b.neutral++
			}
		}
	}

	summaries := make([]types.EntitySummary, 0, len(buckets))
	for entity, b := range buckets {
		avg := b.sum / float64(b.count)
		summaries = append(summaries, types.EntitySummary{
			Entity:           entity,
			MentionCount:     b.count,
			AverageSentiment: avg,
			PositiveCount:    b.positive,
			NegativeCount:    b.negative,
			NeutralCount:     b.neutral,
			Qualitative:      Qualitative(avg),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MentionCount != summaries[j].MentionCount {
			return summaries[i].MentionCount > summaries[j].MentionCount
		}
		return summaries[i].Entity < summaries[j].Entity
	})

	return summaries
}

// Qualitative labels an average score
func Qualitative(avg float64) string {
	switch {
	case avg >= 0.5:
		return VeryPositive
	case avg >= 0.05:
		return Positive
	case avg <= -0.5:
		return VeryNegative
	case avg <= -0.05:
		return Negative
	default:
		return Neutral
	}
}

// TotalMentions is the number of (item, entity) pairs behind the summaries
func TotalMentions(summaries []types.EntitySummary) int {
	total := 0
	for _, s := range summaries {
		total += s.MentionCount
	}
	return total
}
