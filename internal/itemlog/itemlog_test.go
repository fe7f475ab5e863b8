package itemlog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-sentiment/internal/types"
)

func TestAppend(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC) }

	items := []types.ScoredItem{
		{
			NormalizedItem: types.NormalizedItem{
				RawItem:         types.RawItem{ID: "p1", Kind: types.KindPost},
				CleanedText:     "buy reliance",
				MatchedEntities: []string{"RELIANCE"},
			},
			SentimentScore: 0.4,
			SentimentLabel: types.LabelPositive,
		},
		{
			NormalizedItem: types.NormalizedItem{
				RawItem:         types.RawItem{ID: "c1", Kind: types.KindComment},
				MatchedEntities: []string{"TCS"},
			},
			SentimentLabel: types.LabelNeutral,
		},
	}

	path, err := l.Append("run-1", items)
	require.NoError(t, err)
	// 20:00 UTC is already the next day in IST
	assert.Equal(t, filepath.Join(dir, "2024-03-02.jsonl"), path)

	_, err = l.Append("run-2", items[:1])
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 3)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, "p1", entries[0].ID)
	assert.Equal(t, []string{"RELIANCE"}, entries[0].Entities)
	assert.Equal(t, types.LabelPositive, entries[0].Label)
	assert.Equal(t, "2024-03-02 01:30:00", entries[0].Time)
	assert.Equal(t, "run-2", entries[2].RunID)
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	old := filepath.Join(dir, "2024-01-01.jsonl")
	fresh := filepath.Join(dir, "2024-03-01.jsonl")
	require.NoError(t, os.WriteFile(old, []byte(`{"id":"x"}`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte(`{"id":"y"}`+"\n"), 0o644))
	past := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(old, past, past))

	n, err := l.CompressOlder(7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)

	f, err := os.Open(old + ".gz")
	require.NoError(t, err)
	defer f.Close()
	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`+"\n", string(data))

	n, err = l.CompressOlder(0)
	require.NoError(t, err)
	assert.Zero(t, n)
}
