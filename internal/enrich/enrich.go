// Package enrich fills the empty body of link posts with the text of the
// linked article, so that headline-only submissions still carry context.
package enrich

import (
	"context"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// contentSelector lists containers tried in order; the first one that yields
// paragraphs wins.
var contentSelector = []string{"article", "div.article-body", "div.content-body", "div.story-content", "main"}

// hosts that serve the forum itself or its media, never an article
var forumHosts = []string{"reddit.com", "redd.it"}

// Enricher fetches linked articles. Results are cached per URL for the
// lifetime of the Enricher, so a post seen in both listings is fetched once.
type Enricher struct {
	timeout  time.Duration
	maxChars int
	cache    map[string]string
}

// New creates an enricher that keeps at most maxChars characters per article
func New(timeout time.Duration, maxChars int) *Enricher {
	return &Enricher{
		timeout:  timeout,
		maxChars: maxChars,
		cache:    make(map[string]string),
	}
}

// Eligible reports whether a post is a link post worth fetching
func Eligible(post types.RawPost) bool {
	if strings.TrimSpace(post.Body) != "" || post.URL == "" {
		return false
	}
	u, err := url.Parse(post.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range forumHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return false
		}
	}
	return true
}

// EnrichPosts returns a copy of posts in which every eligible post's body is
// replaced by the fetched article text. Fetch failures leave the post as is.
func (e *Enricher) EnrichPosts(ctx context.Context, posts []types.RawPost) []types.RawPost {
	out := make([]types.RawPost, len(posts))
	copy(out, posts)

	fetched := 0
	for i := range out {
		if ctx.Err() != nil {
			break
		}
		if !Eligible(out[i]) {
			continue
		}
		if content := e.articleText(ctx, out[i].URL); content != "" {
			out[i].Body = content
			fetched++
		}
	}

	logger.Info(ctx, "Link posts enriched", "posts", len(posts), "enriched", fetched)
	return out
}

func (e *Enricher) articleText(ctx context.Context, articleURL string) string {
	if content, ok := e.cache[articleURL]; ok {
		return content
	}
	content := truncate(e.fetchArticleContent(ctx, articleURL), e.maxChars)
	e.cache[articleURL] = content
	return content
}

// fetchArticleContent fetches paragraph text from an article URL
func (e *Enricher) fetchArticleContent(ctx context.Context, articleURL string) string {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(e.timeout)

	var content string

	c.OnHTML("html", func(el *colly.HTMLElement) {
		for _, sel := range contentSelector {
			if content = paragraphs(el.DOM.Find(sel)); content != "" {
				return
			}
		}
		// fall back to the page's own summary
		content = strings.TrimSpace(el.DOM.Find(`meta[name="description"]`).AttrOr("content", ""))
	})

	if err := c.Visit(articleURL); err != nil {
		logger.Warn(ctx, "Failed to fetch article content", "url", articleURL, "error", err)
		return ""
	}
	c.Wait()

	return content
}

// paragraphs joins the substantial <p> texts inside a selection
func paragraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.Join(strings.Fields(p.Text()), " ")
		if len(text) > 20 {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// truncate cuts s to at most n runes; n <= 0 means no limit
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}
