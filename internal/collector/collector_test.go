package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-sentiment/internal/types"
)

type fakeForum struct {
	comments map[string][]types.RawComment
	failures map[string]error
	calls    []string
}

func (f *fakeForum) ListHot(ctx context.Context, subreddit string, limit int) ([]types.RawPost, error) {
	return nil, nil
}

func (f *fakeForum) ListTop(ctx context.Context, subreddit, period string, limit int) ([]types.RawPost, error) {
	return nil, nil
}

func (f *fakeForum) Comments(ctx context.Context, postID string) ([]types.RawComment, error) {
	f.calls = append(f.calls, postID)
	if err := f.failures[postID]; err != nil {
		return nil, err
	}
	return f.comments[postID], nil
}

func ids(items []types.RawItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestCollectDeduplicatesAcrossPasses(t *testing.T) {
	forum := &fakeForum{comments: map[string][]types.RawComment{
		"p1": {{ID: "c1", Body: "first", Permalink: "/r/x/comments/p1/_/c1/"}},
		"p2": {{ID: "c2"}},
	}}
	c := New(forum, 20)

	hot := []types.RawPost{{ID: "p1", Title: "hot one"}, {ID: "p2", Title: "hot two"}}
	top := []types.RawPost{{ID: "p2", Title: "hot two"}, {ID: "p3", Title: "top only"}}

	items := c.Collect(context.Background(), hot, top)

	assert.Equal(t, []string{"p1", "c1", "p2", "c2", "p3"}, ids(items))
	assert.Equal(t, []string{"p1", "p2", "p3"}, forum.calls, "comments of a repeated post are not fetched again")
	assert.Equal(t, 5, c.Len())

	require.NotNil(t, items[0].Title)
	assert.Equal(t, "hot one", *items[0].Title)
	assert.Equal(t, types.KindPost, items[0].Kind)

	assert.Nil(t, items[1].Title)
	assert.Equal(t, types.KindComment, items[1].Kind)
	assert.Equal(t, "https://reddit.com/r/x/comments/p1/_/c1/", items[1].URL)
}

func TestCollectCommentLimit(t *testing.T) {
	forum := &fakeForum{comments: map[string][]types.RawComment{
		"p1": {{ID: "c1"}, {ID: "c2"}, {ID: "c3"}, {ID: "c4"}},
		"p2": {{ID: "c1"}, {ID: "c2"}, {ID: "c5"}, {ID: "c6"}, {ID: "c7"}},
	}}
	c := New(forum, 2)

	items := c.Collect(context.Background(), []types.RawPost{{ID: "p1"}, {ID: "p2"}}, nil)

	// already seen comments are skipped without using up the limit
	assert.Equal(t, []string{"p1", "c1", "c2", "p2", "c5", "c6"}, ids(items))
}

func TestCollectZeroComments(t *testing.T) {
	forum := &fakeForum{comments: map[string][]types.RawComment{"p1": {{ID: "c1"}}}}
	items := New(forum, 0).Collect(context.Background(), []types.RawPost{{ID: "p1"}}, nil)
	assert.Equal(t, []string{"p1"}, ids(items))
	assert.Empty(t, forum.calls, "comments are not fetched when the limit is zero")
}

func TestCollectCommentFailureKeepsPost(t *testing.T) {
	forum := &fakeForum{
		comments: map[string][]types.RawComment{"p2": {{ID: "c2"}}},
		failures: map[string]error{"p1": errors.New("503 service unavailable")},
	}
	c := New(forum, 20)

	items := c.Collect(context.Background(), []types.RawPost{{ID: "p1"}, {ID: "p2"}}, nil)
	assert.Equal(t, []string{"p1", "p2", "c2"}, ids(items))
}

func TestExpandComments(t *testing.T) {
	forum := &fakeForum{
		comments: map[string][]types.RawComment{"ok": {{ID: "c1"}}},
		failures: map[string]error{"bad": errors.New("boom")},
	}
	c := New(forum, 20)

	res := c.ExpandComments(context.Background(), "ok")
	assert.NoError(t, res.Err)
	assert.Len(t, res.Comments, 1)

	res = c.ExpandComments(context.Background(), "bad")
	assert.EqualError(t, res.Err, "boom")
	assert.Empty(t, res.Comments)
}

func TestCollectStopsOnCancelledContext(t *testing.T) {
	forum := &fakeForum{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := New(forum, 20).Collect(ctx, []types.RawPost{{ID: "p1"}}, []types.RawPost{{ID: "p2"}})
	assert.Empty(t, items)
	assert.Empty(t, forum.calls)
}
