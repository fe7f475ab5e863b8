package sentiment

import (
	"maps"
	"strings"

	"github.com/jonreiter/govader"
)

// Vader scores text with the VADER compound polarity: lexicon valences
// adjusted for boosters, negation and "but" clauses, normalized into [-1, 1].
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader returns a scorer over the stock VADER lexicon
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// WithTerms returns a copy of the scorer whose lexicon has extra or
// overridden valences (-4..4). The receiver is not modified.
func (v *Vader) WithTerms(terms map[string]float64) *Vader {
	lexicon := maps.Clone(v.analyzer.Lexicon)
	for w, val := range terms {
		lexicon[strings.ToLower(strings.TrimSpace(w))] = val
	}
	return &Vader{analyzer: &govader.SentimentIntensityAnalyzer{
		Lexicon:   lexicon,
		EmojiDict: v.analyzer.EmojiDict,
		Constants: v.analyzer.Constants,
	}}
}

// Score returns the compound polarity of cleaned text
func (v *Vader) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return v.analyzer.PolarityScores(text).Compound
}
