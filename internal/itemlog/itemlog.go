// Package itemlog appends the scored items of each run to a daily JSON-lines
// file, so individual mentions behind a summary can be inspected later.
package itemlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"forum-sentiment/internal/types"
)

var ist = time.FixedZone("IST", 19800)

// Entry is one scored item as written to the log
type Entry struct {
	Time     string               `json:"time"`
	RunID    string               `json:"run_id"`
	ID       string               `json:"id"`
	Kind     types.ItemKind       `json:"type"`
	URL      string               `json:"url,omitempty"`
	Entities []string             `json:"entities"`
	Score    float64              `json:"sentiment_score"`
	Label    types.SentimentLabel `json:"sentiment_label"`
	Text     string               `json:"cleaned_text"`
}

// Log writes entries under dir
type Log struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

func New(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

func (l *Log) dailyFilepath(t time.Time) string {
	return filepath.Join(l.dir, t.In(ist).Format("2006-01-02")+".jsonl")
}

// Append writes one line per scored item and returns the file path
func (l *Log) Append(runID string, items []types.ScoredItem) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().In(ist)
	p := l.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	ts := now.Format("2006-01-02 15:04:05")
	for _, it := range items {
		if err := enc.Encode(Entry{
			Time:     ts,
			RunID:    runID,
			ID:       it.ID,
			Kind:     it.Kind,
			URL:      it.URL,
			Entities: it.MatchedEntities,
			Score:    it.SentimentScore,
			Label:    it.SentimentLabel,
			Text:     it.CleanedText,
		}); err != nil {
			return "", fmt.Errorf("failed to append to %s: %w", p, err)
		}
	}
	return p, nil
}

// CompressOlder gzips daily files last modified more than retentionDays ago.
// Files that cannot be read are skipped.
func (l *Log) CompressOlder(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().AddDate(0, 0, -retentionDays)
	compressed := 0

	err := filepath.WalkDir(l.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		// already compressed by an interrupted earlier pass
		if _, err := os.Stat(gz); err == nil {
			_ = os.Remove(p)
			return nil
		}
		if err := gzipFile(p, gz); err == nil {
			_ = os.Remove(p)
			compressed++
		}
		return nil
	})
	return compressed, err
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	_, copyErr := io.Copy(gw, in)
	closeErr := gw.Close()
	if err := out.Close(); err != nil && closeErr == nil {
		closeErr = err
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dst)
		if copyErr != nil {
			return copyErr
		}
		return closeErr
	}
	return nil
}
