package interfaces

// Scorer returns a compound polarity score in [-1, 1] for cleaned text
type Scorer interface {
	Score(text string) float64
}
