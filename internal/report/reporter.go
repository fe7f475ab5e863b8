// Package report writes the per-entity summaries to disk: a machine-readable
// CSV, a Markdown report and optionally an HTML rendering of it.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/types"
)

// Reporter handles generation and storage of the run reports
type Reporter struct {
	outputDir    string
	csvFile      string
	markdownFile string
	htmlFile     string
}

// NewReporter creates a reporter. An empty htmlFile disables HTML output.
func NewReporter(outputDir, csvFile, markdownFile, htmlFile string) *Reporter {
	return &Reporter{
		outputDir:    outputDir,
		csvFile:      csvFile,
		markdownFile: markdownFile,
		htmlFile:     htmlFile,
	}
}

// Result lists the files written and the failures, one per file
type Result struct {
	CSVPath      string
	MarkdownPath string
	HTMLPath     string
	Errors       []error
}

// Written returns the paths that were written successfully
func (r Result) Written() []string {
	var paths []string
	for _, p := range []string{r.CSVPath, r.MarkdownPath, r.HTMLPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Write saves every configured output. A failure on one file is logged and
// recorded but does not stop the others.
func (r *Reporter) Write(ctx context.Context, meta Meta, summaries []types.EntitySummary) Result {
	var res Result

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		err = fmt.Errorf("failed to create output directory %s: %w", r.outputDir, err)
		logger.ErrorWithErr(ctx, "Cannot write reports", err)
		res.Errors = append(res.Errors, err)
		return res
	}

	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, summaries); err != nil {
		res.Errors = append(res.Errors, r.fail(ctx, "CSV", fmt.Errorf("failed to encode CSV: %w", err)))
	} else if path, err := r.save(r.csvFile, csvBuf.Bytes()); err != nil {
		res.Errors = append(res.Errors, r.fail(ctx, "CSV", err))
	} else {
		res.CSVPath = path
		logger.Info(ctx, "Summary CSV saved", "path", path, "rows", len(summaries))
	}

	md := RenderMarkdown(meta, summaries)
	if path, err := r.save(r.markdownFile, []byte(md)); err != nil {
		res.Errors = append(res.Errors, r.fail(ctx, "Markdown", err))
	} else {
		res.MarkdownPath = path
		logger.Info(ctx, "Markdown report saved", "path", path)
	}

	if r.htmlFile != "" {
		page, err := RenderHTML(fmt.Sprintf("r/%s Sentiment Analysis Report", meta.Subreddit), md)
		if err == nil {
			var path string
			if path, err = r.save(r.htmlFile, page); err == nil {
				res.HTMLPath = path
				logger.Info(ctx, "HTML report saved", "path", path)
			}
		}
		if err != nil {
			res.Errors = append(res.Errors, r.fail(ctx, "HTML", err))
		}
	}

	return res
}

func (r *Reporter) save(name string, data []byte) (string, error) {
	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (r *Reporter) fail(ctx context.Context, kind string, err error) error {
	logger.ErrorWithErr(ctx, "Failed to write report", err, "format", kind)
	return err
}
