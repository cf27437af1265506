package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient()
	c.apiBase = srv.URL
	c.siteBase = srv.URL
	return c
}

func itemServer(t *testing.T, items map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		body, ok := items[r.URL.Path]
		if !ok {
			fmt.Fprint(w, "null")
			return
		}
		fmt.Fprint(w, body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveComment(t *testing.T) {
	srv := itemServer(t, map[string]string{
		"/item/42.json": `{"id":42,"type":"comment","by":"pg","time":1700000000,
			"text":"Nice &amp; simple.<p>Second paragraph.","kids":[43,44]}`,
	})

	item, err := testClient(srv).Resolve(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, "42", item.Node.ID)
	require.Equal(t, "pg", item.Node.Author)
	require.Equal(t, "Nice & simple.\n\nSecond paragraph.", item.Node.Text)
	require.Equal(t, int64(1700000000), item.Node.Time)
	require.Equal(t, []string{"43", "44"}, item.Kids)
	require.Empty(t, item.Node.Children)
}

func TestResolveAbsentOutcomes(t *testing.T) {
	srv := itemServer(t, map[string]string{
		"/item/1.json": `{"id":1,"type":"comment","deleted":true}`,
		"/item/2.json": `{"id":2,"type":"comment","by":"x","text":"hi","dead":true}`,
		"/item/3.json": `{"id":3,"type":"story","by":"x","title":"not a comment"}`,
	})
	client := testClient(srv)

	for _, id := range []string{"1", "2", "3", "999"} {
		item, err := client.Resolve(context.Background(), id)
		require.NoError(t, err, "id %s", id)
		require.Nil(t, item, "id %s", id)
	}
}

func TestResolveDeletedAuthorSentinel(t *testing.T) {
	srv := itemServer(t, map[string]string{
		"/item/5.json": `{"id":5,"type":"comment","text":"orphaned","time":1}`,
	})

	item, err := testClient(srv).Resolve(context.Background(), "5")
	require.NoError(t, err)
	require.Equal(t, "[deleted]", item.Node.Author)
}

func TestResolveTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	item, err := testClient(srv).Resolve(context.Background(), "42")
	require.Error(t, err)
	require.Nil(t, item)
}

func TestFetchStory(t *testing.T) {
	srv := itemServer(t, map[string]string{
		"/item/100.json": `{"id":100,"type":"story","by":"op","title":"Show HN: Something",
			"score":321,"kids":[10,20,30]}`,
	})

	story, kids, err := testClient(srv).FetchStory(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, "Show HN: Something", story.Title)
	require.Equal(t, 321, story.Score)
	require.Equal(t, []string{"10", "20", "30"}, kids)
}

func TestFetchStoryUnavailable(t *testing.T) {
	srv := itemServer(t, map[string]string{
		"/item/100.json": `{"id":100,"type":"story","deleted":true}`,
	})

	_, _, err := testClient(srv).FetchStory(context.Background(), 100)
	require.Error(t, err)

	_, _, err = testClient(srv).FetchStory(context.Background(), 101)
	require.Error(t, err)
}

func TestParseItemID(t *testing.T) {
	id, err := ParseItemID("https://news.ycombinator.com/item?id=46978710")
	require.NoError(t, err)
	require.Equal(t, 46978710, id)

	id, err = ParseItemID("12345")
	require.NoError(t, err)
	require.Equal(t, 12345, id)

	id, err = ParseItemID("'item?id=77'")
	require.NoError(t, err)
	require.Equal(t, 77, id)

	_, err = ParseItemID("https://example.com/")
	require.Error(t, err)
}
