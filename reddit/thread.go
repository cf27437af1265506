package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/techstacks/newsroom/comments"
	"github.com/techstacks/newsroom/model"
)

const (
	threadTimeout   = 30 * time.Second
	threadUserAgent = "newsroom/1.0 (comment analysis)"
)

// The comments endpoint returns raw listing JSON: a two-element array of
// [post listing, comment listing], with replies nested recursively. The go
// structs below cover only the fields the analyzer reads.

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postData struct {
	Title    string `json:"title"`
	SelfText string `json:"selftext"`
}

type commentData struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	CreatedUTC float64 `json:"created_utc"`
	// Replies is a nested listing, or the empty string when there are
	// none.
	Replies json.RawMessage `json:"replies"`
}

// Thread is one post's entire comment tree, delivered by a single listing
// response. It implements comments.Source over the pre-parsed items so tree
// assembly shares the fetcher's ordering and depth discipline.
type Thread struct {
	Title       string
	SelfText    string
	TopLevelIDs []string

	items map[string]*comments.Item
}

// FetchThread retrieves and parses the full comment listing behind a Reddit
// comments URL.
func FetchThread(ctx context.Context, commentsURL string) (*Thread, error) {
	jsonURL := strings.TrimRight(commentsURL, "/") + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jsonURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", threadUserAgent)

	client := &http.Client{Timeout: threadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", jsonURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, jsonURL)
	}

	var listings []listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", jsonURL, err)
	}
	if len(listings) < 2 || len(listings[0].Data.Children) == 0 {
		return nil, fmt.Errorf("unexpected listing shape from %s", jsonURL)
	}

	var post postData
	if err := json.Unmarshal(listings[0].Data.Children[0].Data, &post); err != nil {
		return nil, fmt.Errorf("decoding post data: %w", err)
	}

	t := &Thread{
		Title:    post.Title,
		SelfText: post.SelfText,
		items:    make(map[string]*comments.Item),
	}
	for _, child := range listings[1].Data.Children {
		if id := t.index(child); id != "" {
			t.TopLevelIDs = append(t.TopLevelIDs, id)
		}
	}
	return t, nil
}

// index registers one comment thing and, recursively, its replies. Returns
// the comment's ID, or "" when the thing is not a usable comment.
func (t *Thread) index(th thing) string {
	if th.Kind != "t1" {
		return ""
	}
	var c commentData
	if err := json.Unmarshal(th.Data, &c); err != nil {
		return ""
	}
	if c.ID == "" || c.Body == "[deleted]" || c.Body == "[removed]" {
		return ""
	}

	author := c.Author
	if author == "" {
		author = "[deleted]"
	}
	item := &comments.Item{
		Node: &model.CommentNode{
			ID:     c.ID,
			Author: author,
			Text:   strings.TrimSpace(c.Body),
			Time:   int64(c.CreatedUTC),
		},
	}

	// Replies holds "" (a JSON string) when the comment is a leaf.
	var replies listing
	if len(c.Replies) > 0 && c.Replies[0] == '{' {
		if err := json.Unmarshal(c.Replies, &replies); err == nil {
			for _, reply := range replies.Data.Children {
				if id := t.index(reply); id != "" {
					item.Kids = append(item.Kids, id)
				}
			}
		}
	}

	t.items[item.Node.ID] = item
	return item.Node.ID
}

// Resolve looks one comment up in the pre-parsed thread. Unknown IDs are
// absent; a parsed thread has no transport failures left to surface.
func (t *Thread) Resolve(_ context.Context, id string) (*comments.Item, error) {
	item, ok := t.items[id]
	if !ok {
		return nil, nil
	}
	// Hand out a fresh node so repeated fetches never see accumulated
	// children.
	node := *item.Node
	node.Children = nil
	return &comments.Item{Node: &node, Kids: item.Kids}, nil
}
