package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-sentiment/internal/types"
)

func sampleSummaries() []types.EntitySummary {
	return []types.EntitySummary{
		{Entity: "RELIANCE", MentionCount: 3, AverageSentiment: 0.61234, PositiveCount: 2, NegativeCount: 0, NeutralCount: 1, Qualitative: "Very Positive"},
		{Entity: "TCS", MentionCount: 1, AverageSentiment: -0.5423, PositiveCount: 0, NegativeCount: 1, NeutralCount: 0, Qualitative: "Very Negative"},
	}
}

func sampleMeta() Meta {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return Meta{
		Subreddit:   "IndianStreetBets",
		StartedAt:   start,
		GeneratedAt: start.Add(12500 * time.Millisecond),
		HotLimit:    25,
		TopLimit:    50,
		TopPeriod:   "week",
		TotalItems:  1234,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSummaries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "entity,mention_count,average_sentiment,positive_mentions,negative_mentions,neutral_mentions", lines[0])
	assert.Equal(t, "RELIANCE,3,0.6123,2,0,1", lines[1])
	assert.Equal(t, "TCS,1,-0.5423,0,1,0", lines[2])
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleMeta(), sampleSummaries())

	assert.True(t, strings.HasPrefix(md, "# r/IndianStreetBets Sentiment Analysis Report\n\n"))
	assert.Contains(t, md, "**Generated:** 2024-03-01 09:30:12\n")
	assert.Contains(t, md, "**Analysis Duration:** 12.50 seconds\n")
	assert.Contains(t, md, "**Data Source:** Combined 'Hot' (25) and 'Top (Week)' (50) posts\n")
	assert.Contains(t, md, "**Total Posts/Comments Processed (Unique):** 1,234\n")
	assert.Contains(t, md, "**Total Mentions Analyzed:** 4\n")
	assert.Contains(t, md, "## Sentiment Summary for Tracked Entities/Terms\n")
	assert.Contains(t, md, "| Entity/Term | Mentions | Avg. Score | Overall Sentiment | Positive | Negative | Neutral |\n")
	assert.Contains(t, md, "|:------------|---------:|-----------:|:------------------|---------:|---------:|--------:|\n")
	assert.Contains(t, md, "| RELIANCE    |        3 |       0.61 | Very Positive     |        2 |        0 |       1 |\n")
	assert.Contains(t, md, "| TCS         |        1 |      -0.54 | Very Negative     |        0 |        1 |       0 |\n")
	assert.Contains(t, md, "### Notes:\n")
	assert.Contains(t, md, "- Sentiment analysis performed using VADER on post titles, text, and comments.\n")
	assert.Contains(t, md, "**DISCLAIMER:**")
	assert.True(t, strings.HasSuffix(md, rule+"\n"))

	// RELIANCE row precedes TCS row
	assert.Less(t, strings.Index(md, "| RELIANCE"), strings.Index(md, "| TCS"))
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML("r/x <report>", RenderMarkdown(sampleMeta(), sampleSummaries()))
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>r/x &lt;report&gt;</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, ">RELIANCE</td>")
	assert.Contains(t, html, ">Sentiment Summary for Tracked Entities/Terms</h2>")
}

func TestRenderEscapesPipesInCells(t *testing.T) {
	summaries := []types.EntitySummary{
		{Entity: "M|M", MentionCount: 2, AverageSentiment: 0.1, PositiveCount: 1, NeutralCount: 1, Qualitative: "Positive"},
	}

	md := RenderMarkdown(sampleMeta(), summaries)
	assert.Contains(t, md, "| M\\|M        |        2 |       0.10 | Positive          |        1 |        0 |       1 |\n")

	page, err := RenderHTML("report", md)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, ">M|M</td>")
	assert.Equal(t, 2, strings.Count(html, "<tr>"), "header row and one body row")
}

func TestReporterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := NewReporter(dir, "summary.csv", "report.md", "report.html")

	res := r.Write(context.Background(), sampleMeta(), sampleSummaries())
	require.Empty(t, res.Errors)
	assert.Len(t, res.Written(), 3)

	for _, p := range res.Written() {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "RELIANCE,3,")
}

func TestReporterWriteFailuresAreIndependent(t *testing.T) {
	dir := t.TempDir()
	// a directory where the CSV file should go makes that write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "summary.csv"), 0755))

	r := NewReporter(dir, "summary.csv", "report.md", "")
	res := r.Write(context.Background(), sampleMeta(), sampleSummaries())

	require.Len(t, res.Errors, 1)
	assert.Empty(t, res.CSVPath)
	assert.Equal(t, filepath.Join(dir, "report.md"), res.MarkdownPath)
	assert.Empty(t, res.HTMLPath)
}
