package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/techstacks/newsroom/comments"
	"github.com/techstacks/newsroom/model"
	"golang.org/x/time/rate"
)

const (
	apiBaseURL     = "https://hacker-news.firebaseio.com/v0"
	siteBaseURL    = "https://news.ycombinator.com"
	requestTimeout = 15 * time.Second
	userAgent      = "newsroom/1.0"

	// The Firebase API has no documented quota; 20 rps keeps a full
	// thread fetch well under anything that has drawn throttling.
	requestsPerSecond = 20
)

// Item is the raw Firebase item record. Stories and comments share the same
// shape, discriminated by Type.
type Item struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	By      string `json:"by"`
	Time    int64  `json:"time"`
	Text    string `json:"text"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Score   int    `json:"score"`
	Kids    []int  `json:"kids"`
	Dead    bool   `json:"dead"`
	Deleted bool   `json:"deleted"`
}

// Client talks to the Hacker News Firebase API and the news.ycombinator.com
// site itself. It implements comments.Source for comment items.
type Client struct {
	apiBase  string
	siteBase string
	http     *http.Client
	limiter  *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		apiBase:  apiBaseURL,
		siteBase: siteBaseURL,
		http:     &http.Client{Timeout: requestTimeout},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// get fetches url and decodes the JSON body into dst.
func (c *Client) get(ctx context.Context, url string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// FetchItem fetches one item by numeric ID. A missing item decodes to nil.
func (c *Client) FetchItem(ctx context.Context, id int) (*Item, error) {
	var item *Item
	if err := c.get(ctx, fmt.Sprintf("%s/item/%d.json", c.apiBase, id), &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Resolve fetches the comment with the given ID, normalized to plain text.
//
// Dead, deleted, missing and non-comment items are absent, not errors; only
// transport failures surface as errors.
func (c *Client) Resolve(ctx context.Context, id string) (*comments.Item, error) {
	numID, err := strconv.Atoi(id)
	if err != nil {
		return nil, nil
	}

	item, err := c.FetchItem(ctx, numID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Dead || item.Deleted || item.Type != "comment" {
		return nil, nil
	}

	author := item.By
	if author == "" {
		author = "[deleted]"
	}
	kids := make([]string, len(item.Kids))
	for i, kid := range item.Kids {
		kids[i] = strconv.Itoa(kid)
	}
	return &comments.Item{
		Node: &model.CommentNode{
			ID:     id,
			Author: author,
			Text:   HTMLToText(item.Text),
			Time:   item.Time,
		},
		Kids: kids,
	}, nil
}

// FetchStory fetches a story item and returns it along with the declared
// top-level comment IDs. A dead, deleted or missing story is an error here:
// failing at the explicit root is the one failure that aborts an analysis.
func (c *Client) FetchStory(ctx context.Context, id int) (*Item, []string, error) {
	item, err := c.FetchItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item == nil || item.Dead || item.Deleted {
		return nil, nil, fmt.Errorf("item %d is unavailable", id)
	}
	kids := make([]string, len(item.Kids))
	for i, kid := range item.Kids {
		kids[i] = strconv.Itoa(kid)
	}
	return item, kids, nil
}

var itemIDRe = regexp.MustCompile(`item\?id=(\d+)`)

// ParseItemID extracts the numeric item ID from a raw ID or a
// news.ycombinator.com item URL.
func ParseItemID(s string) (int, error) {
	s = strings.Trim(strings.TrimSpace(s), `'"`)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	if m := itemIDRe.FindStringSubmatch(s); m != nil {
		return strconv.Atoi(m[1])
	}
	return 0, fmt.Errorf("no HN item ID in %q", s)
}
