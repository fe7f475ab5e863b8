package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"forum-sentiment/internal/types"
)

// Comments returns every loaded comment of a post, breadth-first: all
// top-level comments, then their direct replies, and so on. "Load more"
// stubs are dropped rather than expanded.
func (c *Client) Comments(ctx context.Context, postID string) ([]types.RawComment, error) {
	path := "/comments/" + url.PathEscape(postID)

	// the response is [post listing, comment listing]
	var pages []listing
	if err := c.get(ctx, path, nil, &pages); err != nil {
		return nil, fmt.Errorf("failed to fetch comments for %s: %w", postID, err)
	}
	if len(pages) < 2 {
		return nil, fmt.Errorf("unexpected comments response for %s: %d listings", postID, len(pages))
	}

	queue := append([]thing(nil), pages[1].Data.Children...)
	comments := make([]types.RawComment, 0, len(queue))

	for i := 0; i < len(queue); i++ {
		if queue[i].Kind != kindComment {
			continue
		}
		var d commentData
		if err := json.Unmarshal(queue[i].Data, &d); err != nil {
			return nil, fmt.Errorf("failed to decode comment in %s: %w", postID, err)
		}
		comments = append(comments, d.toComment())

		replies, err := d.replies()
		if err != nil {
			return nil, fmt.Errorf("failed to decode replies of %s: %w", d.ID, err)
		}
		queue = append(queue, replies...)
	}

	return comments, nil
}
