package sentiment

import "forum-sentiment/internal/types"

// Compound score cut-offs for the per-item label
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// LabelFor maps a compound score to Positive, Negative or Neutral
func LabelFor(score float64) types.SentimentLabel {
	switch {
	case score >= PositiveThreshold:
		return types.LabelPositive
	case score <= NegativeThreshold:
		return types.LabelNegative
	default:
		return types.LabelNeutral
	}
}
