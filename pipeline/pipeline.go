// Package pipeline runs the analysis stages that turn an indexed post into a
// publishable document: article extraction and summarization, and comment
// tree fetching with sentiment analysis.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/techstacks/newsroom/article"
	"github.com/techstacks/newsroom/comments"
	"github.com/techstacks/newsroom/hackernews"
	"github.com/techstacks/newsroom/llm"
	"github.com/techstacks/newsroom/model"
	"github.com/techstacks/newsroom/postdoc"
	"github.com/techstacks/newsroom/reddit"
)

// StorySource is the part of the Hacker News client the pipeline needs.
type StorySource interface {
	comments.Source
	FetchStory(ctx context.Context, id int) (*hackernews.Item, []string, error)
}

// CommentAnalyzer fetches a post's comment trees and attaches a sentiment
// summary and the first top-level tree to its document.
type CommentAnalyzer struct {
	Completer   llm.Completer
	HN          StorySource
	LoadThread  func(ctx context.Context, commentsURL string) (*reddit.Thread, error)
	MaxDepth    int
	MaxEntries  int
	MaxChars    int
	Concurrency int64
	Progress    comments.Progress
}

func NewCommentAnalyzer(c llm.Completer) *CommentAnalyzer {
	return &CommentAnalyzer{
		Completer:   c,
		HN:          hackernews.NewClient(),
		LoadThread:  reddit.FetchThread,
		MaxDepth:    comments.DefaultMaxDepth,
		MaxEntries:  comments.DefaultMaxEntries,
		MaxChars:    comments.DefaultMaxChars,
		Concurrency: comments.DefaultConcurrency,
	}
}

// Forest fetches all top-level comment trees for doc, choosing the source
// from its comments URL. The returned title is the discussion's own title
// when the source provides one.
func (a *CommentAnalyzer) Forest(ctx context.Context, doc *postdoc.Document) (model.Forest, string, error) {
	if strings.Contains(doc.CommentsURL, "reddit.com") {
		thread, err := a.LoadThread(ctx, doc.CommentsURL)
		if err != nil {
			return nil, "", err
		}
		fetcher := comments.NewFetcher(thread, a.Concurrency)
		forest := fetcher.FetchForest(ctx, thread.TopLevelIDs, a.MaxDepth, a.Progress)
		title := thread.Title
		if title == "" {
			title = doc.Title
		}
		return forest, title, nil
	}

	id, err := hackernews.ParseItemID(doc.CommentsURL)
	if err != nil {
		if id, err = hackernews.ParseItemID(doc.ID); err != nil {
			return nil, "", fmt.Errorf("no usable story reference for post %s", doc.ID)
		}
	}
	story, kids, err := a.HN.FetchStory(ctx, id)
	if err != nil {
		return nil, "", err
	}
	title := story.Title
	if title == "" {
		title = doc.Title
	}
	fetcher := comments.NewFetcher(a.HN, a.Concurrency)
	return fetcher.FetchForest(ctx, kids, a.MaxDepth, a.Progress), title, nil
}

// Run performs comment analysis for doc in place. Documents that already
// carry a sentiment and top comment are left untouched.
func (a *CommentAnalyzer) Run(ctx context.Context, doc *postdoc.Document) error {
	if doc.Analyzed() {
		return nil
	}

	forest, title, err := a.Forest(ctx, doc)
	if err != nil {
		return err
	}
	if len(forest) == 0 {
		return fmt.Errorf("no comments found for post %s", doc.ID)
	}

	text := comments.Render(forest, a.MaxEntries, a.MaxChars)
	sentiment, err := llm.AnalyzeSentiment(ctx, a.Completer, title, text)
	if err != nil {
		return err
	}

	doc.Sentiment = sentiment
	doc.TopComment = forest[0]
	return nil
}

// PageFetcher retrieves and extracts an article page.
type PageFetcher interface {
	Fetch(pageURL string) (*article.Page, error)
}

// ArticleAnalyzer fetches a post's linked article and attaches the LLM's
// classification and summary to its document.
type ArticleAnalyzer struct {
	Completer llm.Completer
	Fetcher   PageFetcher
	MaxChars  int
}

func NewArticleAnalyzer(c llm.Completer) *ArticleAnalyzer {
	return &ArticleAnalyzer{
		Completer: c,
		Fetcher:   article.NewFetcher(),
		MaxChars:  llm.DefaultArticleMaxChars,
	}
}

func (a *ArticleAnalyzer) Run(ctx context.Context, doc *postdoc.Document) error {
	if doc.Summary != "" {
		return nil
	}
	if !IsContentURL(doc.URL) {
		return fmt.Errorf("not a content URL: %s", doc.URL)
	}

	page, err := a.Fetcher.Fetch(doc.URL)
	if err != nil {
		return err
	}
	title := page.Title
	if title == "" {
		title = doc.Title
	}

	analysis, err := llm.AnalyzeArticle(ctx, a.Completer, doc.URL, title, page.Description, page.Text, a.MaxChars)
	if err != nil {
		return err
	}

	// Listing metadata wins over what the analyzer inferred.
	if doc.Title == "" {
		doc.Title = analysis.Title
	}
	doc.Type = analysis.Type
	doc.Technologies = analysis.Technologies
	doc.RelevanceScore = analysis.RelevanceScore
	doc.Summary = analysis.Summary
	return nil
}
