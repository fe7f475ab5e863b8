// Package collector turns listing posts and their comment trees into a
// single deduplicated stream of raw items.
package collector

import (
	"context"

	"forum-sentiment/internal/interfaces"
	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/types"
)

// CommentsResult is the outcome of expanding one post's comment tree.
// Err is set when the expansion failed; Comments is then empty.
type CommentsResult struct {
	Comments []types.RawComment
	Err      error
}

// Collector accumulates items for one run. It is not safe for concurrent use.
type Collector struct {
	client      interfaces.ForumClient
	maxComments int

	seen  map[string]struct{}
	items []types.RawItem
}

// New creates a collector that keeps at most maxComments comments per post
func New(client interfaces.ForumClient, maxComments int) *Collector {
	if maxComments < 0 {
		maxComments = 0
	}
	return &Collector{
		client:      client,
		maxComments: maxComments,
		seen:        make(map[string]struct{}),
	}
}

// Collect processes the hot posts and then the top posts. Every post not
// seen before is emitted followed by its first maxComments unseen comments.
// Returns all items gathered by this collector so far, in first-seen order.
func (c *Collector) Collect(ctx context.Context, hot, top []types.RawPost) []types.RawItem {
	c.addPosts(ctx, "hot", hot)
	c.addPosts(ctx, "top", top)

	out := make([]types.RawItem, len(c.items))
	copy(out, c.items)
	return out
}

// Seen reports whether an item id has already been collected
func (c *Collector) Seen(id string) bool {
	_, ok := c.seen[id]
	return ok
}

// Len returns the number of unique items collected
func (c *Collector) Len() int {
	return len(c.items)
}

func (c *Collector) addPosts(ctx context.Context, pass string, posts []types.RawPost) {
	before := len(c.items)

	for _, post := range posts {
		if ctx.Err() != nil {
			logger.Warn(ctx, "Collection interrupted", "pass", pass, "error", ctx.Err())
			return
		}
		if !c.markSeen(post.ID) {
			continue
		}

		title := post.Title
		c.items = append(c.items, types.RawItem{
			ID:        post.ID,
			Kind:      types.KindPost,
			Title:     &title,
			Body:      post.Body,
			Score:     post.Score,
			URL:       post.URL,
			CreatedAt: post.CreatedAt,
		})

		if c.maxComments <= 0 {
			continue
		}
		res := c.ExpandComments(ctx, post.ID)
		if res.Err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch comments, keeping post only", res.Err, "post_id", post.ID)
			continue
		}
		c.addComments(res.Comments)
	}

	logger.Info(ctx, "Collected listing", "pass", pass, "posts", len(posts), "new_items", len(c.items)-before)
}

// ExpandComments fetches the flattened comment tree of a post
func (c *Collector) ExpandComments(ctx context.Context, postID string) CommentsResult {
	comments, err := c.client.Comments(ctx, postID)
	if err != nil {
		return CommentsResult{Err: err}
	}
	return CommentsResult{Comments: comments}
}

func (c *Collector) addComments(comments []types.RawComment) {
	taken := 0
	for _, cm := range comments {
		if taken >= c.maxComments {
			return
		}
		if !c.markSeen(cm.ID) {
			continue
		}
		c.items = append(c.items, types.RawItem{
			ID:        cm.ID,
			Kind:      types.KindComment,
			Body:      cm.Body,
			Score:     cm.Score,
			URL:       commentURL(cm.Permalink),
			CreatedAt: cm.CreatedAt,
		})
		taken++
	}
}

// markSeen records id and reports whether it was new
func (c *Collector) markSeen(id string) bool {
	if _, ok := c.seen[id]; ok {
		return false
	}
	c.seen[id] = struct{}{}
	return true
}

func commentURL(permalink string) string {
	if permalink == "" {
		return ""
	}
	return "https://reddit.com" + permalink
}
