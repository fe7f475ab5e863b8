package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"forum-sentiment/internal/types"
)

// ListHot returns up to limit posts from /r/{subreddit}/hot
func (c *Client) ListHot(ctx context.Context, subreddit string, limit int) ([]types.RawPost, error) {
	return c.list(ctx, "/r/"+url.PathEscape(subreddit)+"/hot", nil, limit)
}

// ListTop returns up to limit posts from /r/{subreddit}/top for a time period
func (c *Client) ListTop(ctx context.Context, subreddit, period string, limit int) ([]types.RawPost, error) {
	params := url.Values{}
	params.Set("t", period)
	return c.list(ctx, "/r/"+url.PathEscape(subreddit)+"/top", params, limit)
}

// list pages through a link listing with the "after" cursor
func (c *Client) list(ctx context.Context, path string, base url.Values, limit int) ([]types.RawPost, error) {
	posts := make([]types.RawPost, 0, limit)
	after := ""

	for len(posts) < limit {
		params := url.Values{}
		for k, v := range base {
			params[k] = v
		}
		params.Set("limit", strconv.Itoa(min(maxPageSize, limit-len(posts))))
		if after != "" {
			params.Set("after", after)
		}

		var page listing
		if err := c.get(ctx, path, params, &page); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}

		for _, child := range page.Data.Children {
			if child.Kind != kindLink || len(posts) >= limit {
				continue
			}
			var d linkData
			if err := json.Unmarshal(child.Data, &d); err != nil {
				return nil, fmt.Errorf("failed to decode post in %s: %w", path, err)
			}
			posts = append(posts, d.toPost())
		}

		after = page.Data.After
		if after == "" || len(page.Data.Children) == 0 {
			break
		}
	}

	return posts, nil
}
