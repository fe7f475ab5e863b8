package report

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"forum-sentiment/internal/types"
)

// averageScore renders with fixed precision in the CSV
type averageScore float64

func (s averageScore) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(s), 'f', 4, 64), nil
}

type summaryRow struct {
	Entity           string       `csv:"entity"`
	MentionCount     int          `csv:"mention_count"`
	AverageSentiment averageScore `csv:"average_sentiment"`
	PositiveMentions int          `csv:"positive_mentions"`
	NegativeMentions int          `csv:"negative_mentions"`
	NeutralMentions  int          `csv:"neutral_mentions"`
}

// WriteCSV writes one row per entity summary, in the given order, with a header
func WriteCSV(w io.Writer, summaries []types.EntitySummary) error {
	rows := make([]*summaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, &summaryRow{
			Entity:           s.Entity,
			MentionCount:     s.MentionCount,
			AverageSentiment: averageScore(s.AverageSentiment),
			PositiveMentions: s.PositiveCount,
			NegativeMentions: s.NegativeCount,
			NeutralMentions:  s.NeutralCount,
		})
	}
	return gocsv.Marshal(&rows, w)
}
