package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-sentiment/internal/types"
)

func scored(id string, score float64, label types.SentimentLabel, entities ...string) types.ScoredItem {
	return types.ScoredItem{
		NormalizedItem: types.NormalizedItem{
			RawItem:         types.RawItem{ID: id},
			MatchedEntities: entities,
		},
		SentimentScore: score,
		SentimentLabel: label,
	}
}

func TestSummarizeMeanAndCounts(t *testing.T) {
	items := []types.ScoredItem{
		scored("1", 0.6, types.LabelPositive, "RELIANCE"),
		scored("2", -0.6, types.LabelNegative, "RELIANCE"),
		scored("3", 0, types.LabelNeutral, "RELIANCE"),
	}

	got := Summarize(items)
	require.Len(t, got, 1)
	assert.Equal(t, "RELIANCE", got[0].Entity)
	assert.Equal(t, 3, got[0].MentionCount)
	assert.InDelta(t, 0.0, got[0].AverageSentiment, 1e-12)
	assert.Equal(t, 1, got[0].PositiveCount)
	assert.Equal(t, 1, got[0].NegativeCount)
	assert.Equal(t, 1, got[0].NeutralCount)
	assert.Equal(t, Neutral, got[0].Qualitative)
}

func TestSummarizeConservesMentions(t *testing.T) {
	items := []types.ScoredItem{
		scored("1", 0.7, types.LabelPositive, "INFY", "TCS"),
		scored("2", -0.2, types.LabelNegative, "TCS"),
		scored("3", 0.01, types.LabelNeutral, "INFY", "NIFTY", "TCS"),
		scored("4", 0.3, types.LabelPositive),
	}

	got := Summarize(items)

	pairs := 0
	for _, item := range items {
		pairs += len(item.MatchedEntities)
	}
	assert.Equal(t, pairs, TotalMentions(got))

	for _, s := range got {
		assert.Equal(t, s.MentionCount, s.PositiveCount+s.NegativeCount+s.NeutralCount, s.Entity)
		assert.GreaterOrEqual(t, s.AverageSentiment, -1.0)
		assert.LessOrEqual(t, s.AverageSentiment, 1.0)
	}
}

func TestSummarizeOrdering(t *testing.T) {
	items := []types.ScoredItem{
		scored("1", 0.1, types.LabelPositive, "WIPRO"),
		scored("2", 0.1, types.LabelPositive, "TCS", "INFY"),
		scored("3", 0.1, types.LabelPositive, "TCS"),
		scored("4", 0.1, types.LabelPositive, "ITC"),
	}

	got := Summarize(items)
	entities := make([]string, 0, len(got))
	for _, s := range got {
		entities = append(entities, s.Entity)
	}
	assert.Equal(t, []string{"TCS", "INFY", "ITC", "WIPRO"}, entities)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
	assert.Equal(t, 0, TotalMentions(nil))
}

func TestQualitative(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{0.9, VeryPositive},
		{0.5, VeryPositive},
		{0.49, Positive},
		{0.05, Positive},
		{0.04, Neutral},
		{0, Neutral},
		{-0.04, Neutral},
		{-0.05, Negative},
		{-0.49, Negative},
		{-0.5, VeryNegative},
		{-1, VeryNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Qualitative(tt.avg), "avg=%v", tt.avg)
	}
}
