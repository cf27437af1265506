package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultArticleMaxChars bounds the page content sent for analysis.
	DefaultArticleMaxChars = 12000

	contentTruncationMarker = "\n\n[...content truncated...]"
)

const articlePrompt = `You are a technology content analyst. You will receive the extracted content of a web page about technology. Analyze it and return a JSON object with exactly this schema (no markdown fences, just raw JSON):

{
  "title": "string — the page/article title",
  "type": "string — one of: Announcement, Showcase, Question, Post",
  "technologies": [
    "string — top referenced technology #1",
    "string — top referenced technology #2",
    "string — top referenced technology #3"
  ],
  "relevance_score": <number 0-100 — how relevant this page is to developer technology, a programming language, framework, or library. 100 = entirely about a dev technology, 0 = completely unrelated>,
  "summary": "string — a concise summary in markdown format highlighting the most important insights, key takeaways, and notable technical details. Use bullet points for key insights. Keep it under 300 words."
}

Rules:
- technologies: Pick the top 3 most prominently referenced technologies, frameworks, languages, or libraries. Be specific (e.g. "React" not "JavaScript framework"). Use concise names: prefer well-known acronyms (e.g. "AI" not "Artificial Intelligence", "LLM" not "Large Language Model"). Use the broad technology name without version numbers (e.g. "Python" not "Python 3", "React" not "React 19", ".NET" not ".NET 9").
- relevance_score: Score strictly based on how much the content is about a developer-facing technology, programming language, framework, or library.
- summary: Focus on what matters most to a developer audience. Include concrete details like version numbers, benchmarks, or migration paths if present.
- type: Classify the post into exactly one of these categories:
  - "Announcement" — Official news, product updates, releases, and important notices from the team or organization.
  - "Showcase" — Demonstrations of projects, builds, integrations, or creative work to share with the community.
  - "Question" - Requests for help, advice, troubleshooting, or general inquiries seeking answers from others.
  - "Post" — General discussion, opinions, tutorials, articles, and content that doesn't fit the other categories.
- Return ONLY valid JSON. No explanation, no markdown code fences.`

// ArticleAnalysis is the structured result of analyzing an article page.
type ArticleAnalysis struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Technologies   []string `json:"technologies"`
	RelevanceScore int      `json:"relevance_score"`
	Summary        string   `json:"summary"`
}

// AnalyzeArticle classifies and summarizes an article page. body is the
// extracted page text, truncated to maxChars before sending.
func AnalyzeArticle(ctx context.Context, c Completer, pageURL, title, description, body string, maxChars int) (*ArticleAnalysis, error) {
	if maxChars > 0 && len(body) > maxChars {
		body = body[:maxChars] + contentTruncationMarker
	}

	parts := []string{
		fmt.Sprintf("URL: %s", pageURL),
		fmt.Sprintf("Page Title: %s", title),
	}
	if description != "" {
		parts = append(parts, fmt.Sprintf("Meta Description: %s", description))
	}
	parts = append(parts, fmt.Sprintf("\n--- PAGE CONTENT ---\n%s", body))

	reply, err := c.Complete(ctx, articlePrompt, strings.Join(parts, "\n"))
	if err != nil {
		return nil, err
	}

	var analysis ArticleAnalysis
	if err := ExtractInto(reply, &analysis); err != nil {
		return nil, err
	}
	if analysis.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary in %q", ErrMalformedOutput, preview(reply))
	}
	return &analysis, nil
}
