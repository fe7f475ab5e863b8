package reddit

import (
	"bytes"
	"encoding/json"
	"time"

	"forum-sentiment/internal/types"
)

const (
	kindComment = "t1"
	kindLink    = "t3"
)

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

type linkData struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Score      int     `json:"score"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

func (d linkData) toPost() types.RawPost {
	return types.RawPost{
		ID:        d.ID,
		Title:     d.Title,
		Body:      d.Selftext,
		Score:     d.Score,
		URL:       d.URL,
		Permalink: d.Permalink,
		CreatedAt: fromUnix(d.CreatedUTC),
	}
}

type commentData struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`

	// Replies is "" for a leaf and a listing otherwise
	Replies json.RawMessage `json:"replies"`
}

func (d commentData) toComment() types.RawComment {
	return types.RawComment{
		ID:        d.ID,
		Body:      d.Body,
		Score:     d.Score,
		Permalink: d.Permalink,
		CreatedAt: fromUnix(d.CreatedUTC),
	}
}

// replies decodes the nested reply listing, if any
func (d commentData) replies() ([]thing, error) {
	raw := bytes.TrimSpace(d.Replies)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return l.Data.Children, nil
}

func fromUnix(sec float64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}
