package model

// Post is one entry from a top-listing page (HN front page or a subreddit
// hot listing). The ID is source-specific: a numeric string for HN items,
// a base-36 ID for Reddit posts.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	Subreddit   string `json:"subreddit,omitempty"`
	Points      int    `json:"points"`
	Comments    int    `json:"comments"`
	CommentsURL string `json:"comments_url"`
}

// CommentNode is one discussion comment with its resolved children, in the
// order the upstream declared them. A node owns its children outright; a
// subtree that could not be resolved is simply not present.
type CommentNode struct {
	ID       string         `json:"id"`
	Author   string         `json:"by"`
	Text     string         `json:"text"`
	Time     int64          `json:"time"`
	Children []*CommentNode `json:"children"`
}

// Forest is an ordered collection of independent top-level comment trees.
type Forest []*CommentNode

// FlatEntry is a projection of one comment for rendering: no links back into
// the source tree, just the author, body and nesting depth (0 = top-level).
type FlatEntry struct {
	Author string
	Text   string
	Depth  int
}

// Size counts the nodes in the tree rooted at n.
func (n *CommentNode) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}

// Size counts the nodes across all trees in the forest.
func (f Forest) Size() int {
	total := 0
	for _, tree := range f {
		total += tree.Size()
	}
	return total
}
