package redditobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-sentiment/internal/logger"
	"forum-sentiment/internal/types"
)

type fakeForum struct {
	posts    []types.RawPost
	comments []types.RawComment
	err      error

	gotPeriod string
	gotLimit  int
	gotPostID string
}

func (f *fakeForum) ListHot(ctx context.Context, subreddit string, limit int) ([]types.RawPost, error) {
	f.gotLimit = limit
	return f.posts, f.err
}

func (f *fakeForum) ListTop(ctx context.Context, subreddit, period string, limit int) ([]types.RawPost, error) {
	f.gotPeriod, f.gotLimit = period, limit
	return f.posts, f.err
}

func (f *fakeForum) Comments(ctx context.Context, postID string) ([]types.RawComment, error) {
	f.gotPostID = postID
	return f.comments, f.err
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, logger.InitWithConfig(logger.LogConfig{Level: "DEBUG", Format: "json", Output: &buf}))
	t.Cleanup(func() { _ = logger.InitWithConfig(logger.LogConfig{Level: "INFO"}) })
	return &buf
}

func TestWrapPassesResultsThrough(t *testing.T) {
	logs := captureLogs(t)
	inner := &fakeForum{
		posts:    []types.RawPost{{ID: "p1", Title: "TCS results"}, {ID: "p2"}},
		comments: []types.RawComment{{ID: "c1", Body: "nice"}},
	}
	client := Wrap(inner)
	ctx := context.Background()

	hot, err := client.ListHot(ctx, "IndianStreetBets", 25)
	require.NoError(t, err)
	assert.Equal(t, inner.posts, hot)
	assert.Equal(t, 25, inner.gotLimit)

	top, err := client.ListTop(ctx, "IndianStreetBets", "week", 50)
	require.NoError(t, err)
	assert.Equal(t, inner.posts, top)
	assert.Equal(t, "week", inner.gotPeriod)
	assert.Equal(t, 50, inner.gotLimit)

	comments, err := client.Comments(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, inner.comments, comments)
	assert.Equal(t, "p1", inner.gotPostID)

	assert.Contains(t, logs.String(), `"msg":"Hot listing fetched"`)
	assert.Contains(t, logs.String(), `"msg":"Top listing fetched"`)
	assert.Contains(t, logs.String(), `"msg":"Comment tree fetched"`)
}

func TestWrapPassesErrorsThrough(t *testing.T) {
	logs := captureLogs(t)
	failure := errors.New("reddit api error: 503")
	client := Wrap(&fakeForum{posts: []types.RawPost{{ID: "ignored"}}, err: failure})
	ctx := context.Background()

	hot, err := client.ListHot(ctx, "IndianStreetBets", 25)
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, hot)

	top, err := client.ListTop(ctx, "IndianStreetBets", "week", 50)
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, top)

	comments, err := client.Comments(ctx, "p1")
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, comments)

	assert.Contains(t, logs.String(), `"msg":"Hot listing fetch failed"`)
	assert.Contains(t, logs.String(), `"level":"WARN","msg":"Comment tree fetch failed"`)
}
