package interfaces

import (
	"context"

	"forum-sentiment/internal/types"
)

// ForumClient fetches submissions and comment trees from a single forum
type ForumClient interface {
	// ListHot returns up to limit posts from the subreddit's hot listing
	ListHot(ctx context.Context, subreddit string, limit int) ([]types.RawPost, error)

	// ListTop returns up to limit posts from the top listing for a period
	// (hour, day, week, month, year, all)
	ListTop(ctx context.Context, subreddit, period string, limit int) ([]types.RawPost, error)

	// Comments returns the post's comment tree flattened breadth-first
	Comments(ctx context.Context, postID string) ([]types.RawComment, error)
}
