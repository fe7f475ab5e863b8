package types

import "time"

// ItemKind distinguishes submissions from comments
type ItemKind string

const (
	KindPost    ItemKind = "post"
	KindComment ItemKind = "comment"
)

// RawPost is a submission as returned by the forum client
type RawPost struct {
	ID        string
	Title     string
	Body      string
	Score     int
	URL       string
	Permalink string
	CreatedAt time.Time
}

// RawComment is a single comment from an expanded comment tree
type RawComment struct {
	ID        string
	Body      string
	Score     int
	Permalink string
	CreatedAt time.Time
}

// RawItem is the uniform shape of a post or comment after collection.
// Title is nil for comments.
type RawItem struct {
	ID        string    `json:"id"`
	Kind      ItemKind  `json:"type"`
	Title     *string   `json:"title,omitempty"`
	Body      string    `json:"text"`
	Score     int       `json:"score"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizedItem carries the cleaned text and the entities found in it
type NormalizedItem struct {
	RawItem
	FullText        string   `json:"full_text"`
	CleanedText     string   `json:"cleaned_text"`
	MatchedEntities []string `json:"mentioned_entities"`
}

// SentimentLabel is the item-level polarity bucket
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "Positive"
	LabelNegative SentimentLabel = "Negative"
	LabelNeutral  SentimentLabel = "Neutral"
)

// ScoredItem is a normalized item with its compound score
type ScoredItem struct {
	NormalizedItem
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
}

// EntitySummary is one aggregated row per tracked entity
type EntitySummary struct {
	Entity           string  `json:"entity"`
	MentionCount     int     `json:"mention_count"`
	AverageSentiment float64 `json:"average_sentiment"`
	PositiveCount    int     `json:"positive_mentions"`
	NegativeCount    int     `json:"negative_mentions"`
	NeutralCount     int     `json:"neutral_mentions"`
	Qualitative      string  `json:"sentiment_label_qualitative"`
}
