package comments

import (
	"context"

	"github.com/techstacks/newsroom/model"
)

// Item is one resolved comment along with the IDs of its children in the
// order the upstream declared them. The node's Children slice is left empty;
// filling it in is the fetcher's job.
type Item struct {
	Node *model.CommentNode
	Kids []string
}

// Source resolves a single comment by ID from some content API.
//
// The outcome is three-way: (item, nil) on success, (nil, nil) when the ID
// yields no usable content (deleted, removed, dead, wrong item type, empty
// body), and (nil, err) only for transport-level failures. Absence is a
// normal terminal outcome, not an error: the subtree rooted at the ID simply
// does not exist.
type Source interface {
	Resolve(ctx context.Context, id string) (*Item, error)
}
