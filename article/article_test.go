package article

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gocolly/colly"
	"github.com/stretchr/testify/require"
)

func testFetcher() *Fetcher {
	return &Fetcher{newCollector: func() (*colly.Collector, error) {
		return colly.NewCollector(colly.IgnoreRobotsTxt()), nil
	}}
}

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="Why Go Modules Won">
<meta name="description" content="A look back at Go dependency management.">
</head>
<body>
<nav>Home | About</nav>
<article>
<h1>Why Go Modules Won</h1>
<p>Versioned imports changed everything.</p>
<script>trackPageView();</script>
<p>GOPATH is history.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

func TestFetchExtractsArticleContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	page, err := testFetcher().Fetch(srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Why Go Modules Won", page.Title)
	require.Equal(t, "A look back at Go dependency management.", page.Description)
	require.Contains(t, page.Text, "Versioned imports changed everything.")
	require.Contains(t, page.Text, "GOPATH is history.")
	require.NotContains(t, page.Text, "trackPageView")
	require.NotContains(t, page.Text, "Home | About")
	require.NotContains(t, page.Text, "Copyright 2026")
}

func TestFetchFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Bare</title></head><body><p>Just a paragraph.</p></body></html>`))
	}))
	defer srv.Close()

	page, err := testFetcher().Fetch(srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Bare", page.Title)
	require.Contains(t, page.Text, "Just a paragraph.")
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testFetcher().Fetch(srv.URL)
	require.Error(t, err)
}
