package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/techstacks/newsroom/comments"
)

const threadJSON = `[
  {"kind": "Listing", "data": {"children": [
    {"kind": "t3", "data": {"title": "Go 1.22 released", "selftext": "Release notes inside."}}
  ]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {
      "id": "aaa", "author": "gopher", "body": "Great release", "created_utc": 1700000000,
      "replies": {"kind": "Listing", "data": {"children": [
        {"kind": "t1", "data": {
          "id": "bbb", "author": "rustacean", "body": "Agreed", "created_utc": 1700000100,
          "replies": ""
        }},
        {"kind": "t1", "data": {
          "id": "ccc", "author": "troll", "body": "[removed]", "created_utc": 1700000200,
          "replies": ""
        }},
        {"kind": "t1", "data": {
          "id": "ddd", "author": "pythonista", "body": "Nice", "created_utc": 1700000300,
          "replies": ""
        }}
      ]}}
    }},
    {"kind": "t1", "data": {
      "id": "eee", "author": "zigzag", "body": "Second thread", "created_utc": 1700000400,
      "replies": ""
    }},
    {"kind": "more", "data": {"count": 12, "children": ["fff", "ggg"]}}
  ]}}
]`

func threadServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/golang/comments/abc123/go_122_released.json", r.URL.Path)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchThread(t *testing.T) {
	srv := threadServer(t, threadJSON)

	thread, err := FetchThread(context.Background(),
		srv.URL+"/r/golang/comments/abc123/go_122_released/")
	require.NoError(t, err)
	require.Equal(t, "Go 1.22 released", thread.Title)
	require.Equal(t, "Release notes inside.", thread.SelfText)
	// The "more" stub is not a comment and the removed comment is not a
	// top-level entry, so only real comments remain.
	require.Equal(t, []string{"aaa", "eee"}, thread.TopLevelIDs)
}

func TestThreadAsSource(t *testing.T) {
	srv := threadServer(t, threadJSON)

	thread, err := FetchThread(context.Background(),
		srv.URL+"/r/golang/comments/abc123/go_122_released/")
	require.NoError(t, err)

	forest := comments.NewFetcher(thread, 8).FetchForest(
		context.Background(), thread.TopLevelIDs, comments.DefaultMaxDepth, nil)

	require.Len(t, forest, 2)
	first := forest[0]
	require.Equal(t, "gopher", first.Author)
	require.Equal(t, "Great release", first.Text)

	// The removed reply is pruned; declared order survives.
	require.Len(t, first.Children, 2)
	require.Equal(t, "rustacean", first.Children[0].Author)
	require.Equal(t, "pythonista", first.Children[1].Author)

	require.Equal(t, "zigzag", forest[1].Author)
	require.Empty(t, forest[1].Children)
}

func TestThreadDepthBound(t *testing.T) {
	srv := threadServer(t, threadJSON)

	thread, err := FetchThread(context.Background(),
		srv.URL+"/r/golang/comments/abc123/go_122_released/")
	require.NoError(t, err)

	forest := comments.NewFetcher(thread, 8).FetchForest(
		context.Background(), thread.TopLevelIDs, 0, nil)
	require.Len(t, forest, 2)
	require.Empty(t, forest[0].Children)
}

func TestThreadResolveUnknownIsAbsent(t *testing.T) {
	srv := threadServer(t, threadJSON)

	thread, err := FetchThread(context.Background(),
		srv.URL+"/r/golang/comments/abc123/go_122_released/")
	require.NoError(t, err)

	item, err := thread.Resolve(context.Background(), "zzz")
	require.NoError(t, err)
	require.Nil(t, item)
}

func TestFetchThreadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := FetchThread(context.Background(), srv.URL+"/r/golang/comments/abc123/x")
	require.Error(t, err)
}

func TestFetchThreadMalformedListing(t *testing.T) {
	srv := threadServer(t, `[{"kind": "Listing", "data": {"children": []}}]`)

	_, err := FetchThread(context.Background(),
		srv.URL+"/r/golang/comments/abc123/go_122_released")
	require.Error(t, err)
}
