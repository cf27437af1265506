package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeArticle(t *testing.T) {
	fake := &fakeCompleter{reply: `{
		"title": "Go 1.22 Release Notes",
		"type": "Announcement",
		"technologies": ["Go", "HTTP", "WASM"],
		"relevance_score": 95,
		"summary": "- Loop variable scoping changed"
	}`}

	analysis, err := AnalyzeArticle(context.Background(), fake,
		"https://go.dev/blog/go1.22", "Go 1.22 Release Notes", "What is new in Go 1.22.",
		"Go 1.22 changes for loop semantics.", 0)
	require.NoError(t, err)
	require.Equal(t, "Announcement", analysis.Type)
	require.Equal(t, []string{"Go", "HTTP", "WASM"}, analysis.Technologies)
	require.Equal(t, 95, analysis.RelevanceScore)

	require.Contains(t, fake.lastUser, "URL: https://go.dev/blog/go1.22")
	require.Contains(t, fake.lastUser, "Meta Description: What is new in Go 1.22.")
	require.Contains(t, fake.lastUser, "--- PAGE CONTENT ---")
}

func TestAnalyzeArticleTruncatesBody(t *testing.T) {
	fake := &fakeCompleter{reply: `{"title": "t", "type": "Post", "technologies": ["Go"], "relevance_score": 10, "summary": "s"}`}

	body := strings.Repeat("x", 500)
	_, err := AnalyzeArticle(context.Background(), fake, "https://example.com", "t", "", body, 100)
	require.NoError(t, err)
	require.Contains(t, fake.lastUser, "[...content truncated...]")
	require.NotContains(t, fake.lastUser, strings.Repeat("x", 101))
}

func TestAnalyzeArticleMissingSummary(t *testing.T) {
	fake := &fakeCompleter{reply: `{"title": "t", "type": "Post"}`}

	_, err := AnalyzeArticle(context.Background(), fake, "https://example.com", "t", "", "body", 0)
	require.ErrorIs(t, err, ErrMalformedOutput)
}
