package sentiment

import (
	"forum-sentiment/internal/interfaces"
	"forum-sentiment/internal/types"
)

// ScoreItems scores each item's cleaned text. Order is preserved.
func ScoreItems(scorer interfaces.Scorer, items []types.NormalizedItem) []types.ScoredItem {
	scored := make([]types.ScoredItem, 0, len(items))
	for _, item := range items {
		score := scorer.Score(item.CleanedText)
		scored = append(scored, types.ScoredItem{
			NormalizedItem: item,
			SentimentScore: score,
			SentimentLabel: LabelFor(score),
		})
	}
	return scored
}
