package comments

import (
	"context"
	"sync"

	"github.com/techstacks/newsroom/model"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultMaxDepth bounds recursion into reply chains. Treated as a
	// configurable ceiling, not a protocol constant.
	DefaultMaxDepth = 50

	// DefaultConcurrency is the number of comment fetches allowed in
	// flight at once across an entire fetch operation.
	DefaultConcurrency = 8

	// progressInterval controls how often forest fetch progress is
	// reported to the caller.
	progressInterval = 10
)

// Progress receives forest fetch updates: completed roots, total roots, and
// how many of the completed roots yielded no tree.
type Progress func(done, total, dropped int)

// Fetcher retrieves comment trees from a Source.
//
// All network fetches performed by one Fetcher, at any recursion depth, pass
// through a single weighted semaphore. The bound therefore caps total
// in-flight requests for the whole operation rather than per fan-out point.
type Fetcher struct {
	src Source
	sem *semaphore.Weighted
}

// NewFetcher creates a Fetcher over src limited to concurrency simultaneous
// resolves. Non-positive concurrency falls back to DefaultConcurrency.
func NewFetcher(src Source, concurrency int64) *Fetcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Fetcher{
		src: src,
		sem: semaphore.NewWeighted(concurrency),
	}
}

// resolve performs one bounded Source resolve.
func (f *Fetcher) resolve(ctx context.Context, id string) (*Item, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.sem.Release(1)
	return f.src.Resolve(ctx, id)
}

// FetchTree resolves the comment with the given ID and, recursively, all of
// its descendants down to maxDepth levels below it.
//
// A nil tree with a nil error means the root was absent. An error is
// returned only when the root itself fails at the transport level; failures
// below the root drop just the affected subtree. Children always appear in
// the upstream-declared order no matter when their fetches complete. With
// maxDepth zero the root becomes a leaf even if the upstream declares kids.
func (f *Fetcher) FetchTree(ctx context.Context, id string, maxDepth int) (*model.CommentNode, error) {
	item, err := f.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	node := item.Node
	if len(item.Kids) == 0 || maxDepth <= 0 {
		return node, nil
	}

	// Gather children into slots keyed by declared position, then project
	// back through the declared order. Completion order never matters.
	results := make([]*model.CommentNode, len(item.Kids))
	var wg sync.WaitGroup
	for i, kid := range item.Kids {
		i, kid := i, kid
		wg.Add(1)
		go func() {
			defer wg.Done()
			child, err := f.FetchTree(ctx, kid, maxDepth-1)
			if err != nil {
				// A failed child drops silently; its siblings
				// and the parent are unaffected.
				return
			}
			results[i] = child
		}()
	}
	wg.Wait()

	for _, child := range results {
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}

// FetchForest fetches the trees rooted at each of ids, preserving the given
// order among the roots that survive. Roots that are absent or fail are
// dropped; the forest fetch itself never fails once underway. progress may
// be nil.
func (f *Fetcher) FetchForest(ctx context.Context, ids []string, maxDepth int, progress Progress) model.Forest {
	if len(ids) == 0 {
		return nil
	}

	results := make([]*model.CommentNode, len(ids))
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		done    int
		dropped int
	)
	for i, id := range ids {
		i, id := i, id
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := f.FetchTree(ctx, id, maxDepth)
			if err == nil {
				results[i] = tree
			}

			mu.Lock()
			done++
			if results[i] == nil {
				dropped++
			}
			if progress != nil && (done%progressInterval == 0 || done == len(ids)) {
				progress(done, len(ids), dropped)
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	forest := make(model.Forest, 0, len(ids))
	for _, tree := range results {
		if tree != nil {
			forest = append(forest, tree)
		}
	}
	return forest
}
