package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"forum-sentiment/internal/aggregate"
	"forum-sentiment/internal/types"
)

const disclaimer = "**DISCLAIMER:** This analysis is based on public Reddit data using automated tools. " +
	"Social media sentiment is volatile, potentially biased, and NOT reliable financial advice. " +
	"Make investment decisions based on thorough personal research and professional advice."

const rule = "************************************************************"

// pipes inside a table cell would end the cell
var cellEscaper = strings.NewReplacer("|", `\|`)

// Meta describes the run a report was produced by
type Meta struct {
	Subreddit   string
	StartedAt   time.Time
	GeneratedAt time.Time
	HotLimit    int
	TopLimit    int
	TopPeriod   string
	TotalItems  int
}

// Duration is the time from run start to report generation
func (m Meta) Duration() time.Duration {
	if m.StartedAt.IsZero() || m.GeneratedAt.Before(m.StartedAt) {
		return 0
	}
	return m.GeneratedAt.Sub(m.StartedAt)
}

// RenderMarkdown builds the human-readable report
func RenderMarkdown(meta Meta, summaries []types.EntitySummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# r/%s Sentiment Analysis Report\n\n", meta.Subreddit))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("**Analysis Duration:** %.2f seconds\n", meta.Duration().Seconds()))
	sb.WriteString(fmt.Sprintf("**Data Source:** Combined 'Hot' (%d) and 'Top (%s)' (%d) posts\n",
		meta.HotLimit, periodTitle(meta.TopPeriod), meta.TopLimit))
	sb.WriteString(fmt.Sprintf("**Total Posts/Comments Processed (Unique):** %s\n", humanize.Comma(int64(meta.TotalItems))))
	sb.WriteString(fmt.Sprintf("**Total Mentions Analyzed:** %s\n\n", humanize.Comma(int64(aggregate.TotalMentions(summaries)))))

	sb.WriteString("## Sentiment Summary for Tracked Entities/Terms\n\n")
	sb.WriteString(summaryTable(summaries))
	sb.WriteString("\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString("### Notes:\n")
	sb.WriteString("- **Avg. Score:** Average VADER compound sentiment score (-1.0 to +1.0).\n")
	sb.WriteString("- **Overall Sentiment:** Qualitative label based on Avg. Score.\n")
	sb.WriteString("- Sentiment analysis performed using VADER on post titles, text, and comments.\n\n")

	sb.WriteString(rule + "\n")
	sb.WriteString(disclaimer + "\n")
	sb.WriteString(rule + "\n")

	return sb.String()
}

// periodTitle turns "week" into "Week"
func periodTitle(period string) string {
	if period == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(period)
	return strings.ToUpper(string(r)) + period[size:]
}

type column struct {
	header string
	right  bool
}

var tableColumns = []column{
	{"Entity/Term", false},
	{"Mentions", true},
	{"Avg. Score", true},
	{"Overall Sentiment", false},
	{"Positive", true},
	{"Negative", true},
	{"Neutral", true},
}

// summaryTable renders a GitHub pipe table padded to column width, text
// left-aligned and numbers right-aligned
func summaryTable(summaries []types.EntitySummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		qualitative := s.Qualitative
		if qualitative == "" {
			qualitative = aggregate.Qualitative(s.AverageSentiment)
		}
		rows = append(rows, []string{
			cellEscaper.Replace(s.Entity),
			strconv.Itoa(s.MentionCount),
			fmt.Sprintf("%.2f", s.AverageSentiment),
			cellEscaper.Replace(qualitative),
			strconv.Itoa(s.PositiveCount),
			strconv.Itoa(s.NegativeCount),
			strconv.Itoa(s.NeutralCount),
		})
	}

	widths := make([]int, len(tableColumns))
	for i, col := range tableColumns {
		widths[i] = utf8.RuneCountInString(col.header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, cell := range cells {
			sb.WriteString(" " + pad(cell, widths[i], tableColumns[i].right) + " |")
		}
		sb.WriteString("\n")
	}

	headers := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		headers[i] = col.header
	}
	writeRow(headers)

	sb.WriteString("|")
	for i, col := range tableColumns {
		if col.right {
			sb.WriteString(strings.Repeat("-", widths[i]+1) + ":|")
		} else {
			sb.WriteString(":" + strings.Repeat("-", widths[i]+1) + "|")
		}
	}
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func pad(s string, width int, right bool) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
