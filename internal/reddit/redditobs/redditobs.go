package redditobs

import (
	"context"
	"time"

	"forum-sentiment/internal/interfaces"
	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/trace"
	"forum-sentiment/internal/types"
)

type observableForumClient struct {
	client interfaces.ForumClient
}

var _ interfaces.ForumClient = (*observableForumClient)(nil)

func Wrap(client interfaces.ForumClient) interfaces.ForumClient {
	return &observableForumClient{
		client: client,
	}
}

func (ofc *observableForumClient) ListHot(ctx context.Context, subreddit string, limit int) ([]types.RawPost, error) {
	ctx, span := trace.StartSpan(ctx, "reddit.ListHot")
	defer span.End()

	start := time.Now()
	logger.DebugSkip(ctx, 1, "Fetching hot listing",
		"subreddit", subreddit,
		"limit", limit,
	)

	posts, err := ofc.client.ListHot(ctx, subreddit, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Hot listing fetch failed", err,
			"subreddit", subreddit,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Hot listing fetched",
		"subreddit", subreddit,
		"posts", len(posts),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return posts, nil
}

func (ofc *observableForumClient) ListTop(ctx context.Context, subreddit, period string, limit int) ([]types.RawPost, error) {
	ctx, span := trace.StartSpan(ctx, "reddit.ListTop")
	defer span.End()

	start := time.Now()
	logger.DebugSkip(ctx, 1, "Fetching top listing",
		"subreddit", subreddit,
		"period", period,
		"limit", limit,
	)

	posts, err := ofc.client.ListTop(ctx, subreddit, period, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Top listing fetch failed", err,
			"subreddit", subreddit,
			"period", period,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Top listing fetched",
		"subreddit", subreddit,
		"period", period,
		"posts", len(posts),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return posts, nil
}

func (ofc *observableForumClient) Comments(ctx context.Context, postID string) ([]types.RawComment, error) {
	ctx, span := trace.StartSpan(ctx, "reddit.Comments")
	defer span.End()

	comments, err := ofc.client.Comments(ctx, postID)
	if err != nil {
		// the collector decides what a failure means; keep this at warn
		logger.WarnSkip(ctx, 1, "Comment tree fetch failed",
			"post_id", postID,
			"error", err,
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Comment tree fetched",
		"post_id", postID,
		"comments", len(comments),
	)

	return comments, nil
}
