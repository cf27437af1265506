package reddit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/techstacks/newsroom/model"
	"github.com/techstacks/newsroom/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultSubreddits are the communities scanned for top technology posts.
var DefaultSubreddits = []string{
	"react", "angular", "vuejs", "python", "dotnet", "csharp", "golang",
	"rust", "Zig", "LocalLLaMA", "ollama", "claude", "OpenAI",
	"machinelearning", "programming", "technology", "webdev", "linux",
	"apple", "windows", "cybersecurity", "technews", "gadgets", "hardware",
}

const (
	// MinPoints filters Reddit listings; small-subreddit chatter rarely
	// clears it.
	MinPoints = 200

	// TopLimit caps how many posts one listing sweep keeps.
	TopLimit = 100

	subredditFetchLimit = 50
	redditBase          = "https://www.reddit.com"
)

// Client wraps the read-only Reddit API for listing fetches.
type Client struct {
	api *reddit.Client
}

func NewClient() (*Client, error) {
	api, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("creating reddit client: %w", err)
	}
	return &Client{api: api}, nil
}

// FetchSubredditHot returns the current hot posts of one subreddit,
// excluding stickied threads.
func (c *Client) FetchSubredditHot(ctx context.Context, subreddit string) ([]model.Post, error) {
	hot, _, err := c.api.Subreddit.HotPosts(ctx, subreddit, &reddit.ListOptions{
		Limit: subredditFetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", subreddit, err)
	}

	posts := make([]model.Post, 0, len(hot))
	for _, p := range hot {
		if p.Stickied {
			continue
		}

		commentsURL := redditBase + p.Permalink
		postURL := p.URL
		// Self posts point back at their own discussion.
		if p.IsSelfPost || postURL == "" {
			postURL = commentsURL
		}

		posts = append(posts, model.Post{
			ID:          p.ID,
			Title:       strings.TrimSpace(p.Title),
			Slug:        utils.Slugify(p.Title),
			URL:         postURL,
			Subreddit:   p.SubredditNamePrefixed,
			Points:      p.Score,
			Comments:    p.NumberOfComments,
			CommentsURL: commentsURL,
		})
	}
	return posts, nil
}

// FetchTop sweeps the given subreddits concurrently and aggregates their hot
// posts: deduplicated by ID, filtered to more than minPoints points, sorted
// by points descending and capped at limit. A subreddit that fails to fetch
// is skipped with a warning callback; it never aborts the sweep.
func (c *Client) FetchTop(ctx context.Context, subreddits []string, minPoints, limit int, warn func(subreddit string, err error)) []model.Post {
	var (
		mu  sync.Mutex
		all []model.Post
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, subreddit := range subreddits {
		subreddit := subreddit
		g.Go(func() error {
			posts, err := c.FetchSubredditHot(ctx, subreddit)
			if err != nil {
				if warn != nil {
					warn(subreddit, err)
				}
				return nil
			}
			mu.Lock()
			all = append(all, posts...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return selectTop(all, minPoints, limit)
}

// selectTop deduplicates the aggregated posts by ID, drops anything at or
// below minPoints, and returns the highest-scored limit posts.
func selectTop(all []model.Post, minPoints, limit int) []model.Post {
	seen := make(map[string]bool)
	unique := make([]model.Post, 0, len(all))
	for _, p := range all {
		if seen[p.ID] || p.Points <= minPoints {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Points > unique[j].Points
	})
	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}
