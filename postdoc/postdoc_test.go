package postdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/techstacks/newsroom/model"
)

func testDoc(id string) *Document {
	return &Document{
		Post: model.Post{
			ID:     id,
			Title:  "Go 1.22 released",
			Slug:   "go-1-22-released",
			URL:    "https://go.dev/blog/go1.22",
			Points: 412,
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	doc := testDoc("38001")
	doc.Sentiment = "Generally positive"
	doc.TopComment = &model.CommentNode{ID: "c1", Author: "gopher", Text: "Finally"}
	require.NoError(t, store.Write(doc))

	got, err := store.Read("38001")
	require.NoError(t, err)
	require.Equal(t, doc.Title, got.Title)
	require.Equal(t, doc.Sentiment, got.Sentiment)
	require.NotNil(t, got.TopComment)
	require.Equal(t, "gopher", got.TopComment.Author)
	require.True(t, got.Analyzed())
}

func TestAnalyzedRequiresBothFields(t *testing.T) {
	doc := testDoc("1")
	require.False(t, doc.Analyzed())
	doc.Sentiment = "Mixed"
	require.False(t, doc.Analyzed())
	doc.TopComment = &model.CommentNode{ID: "c1"}
	require.True(t, doc.Analyzed())
}

func TestCompleteMovesDocument(t *testing.T) {
	root := t.TempDir()
	store, err := Open(root)
	require.NoError(t, err)

	require.NoError(t, store.Write(testDoc("7")))
	require.NoError(t, store.Complete("7"))

	_, err = store.Read("7")
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(root, "completed", "7.json"))
	require.NoError(t, err)
}

func TestFailRecordsErrorAndMoves(t *testing.T) {
	root := t.TempDir()
	store, err := Open(root)
	require.NoError(t, err)

	doc := testDoc("9")
	require.NoError(t, store.Write(doc))
	require.NoError(t, store.Fail(doc, "article unreachable"))

	_, err = store.Read("9")
	require.Error(t, err)
	data, err := os.ReadFile(filepath.Join(root, "failed", "9.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), "article unreachable")
}

func TestPendingAndDoneIDs(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write(testDoc("b")))
	require.NoError(t, store.Write(testDoc("a")))
	require.NoError(t, store.Write(testDoc("c")))
	require.NoError(t, store.Complete("c"))
	require.NoError(t, store.Fail(testDoc("d"), "nope"))

	pending, err := store.PendingIDs()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, pending)

	done, err := store.DoneIDs()
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.True(t, done[id], id)
	}
}
