package process

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/techstacks/newsroom/cli/analyze"
	"github.com/techstacks/newsroom/comments"
	"github.com/techstacks/newsroom/configuration"
	"github.com/techstacks/newsroom/llm"
	"github.com/techstacks/newsroom/pipeline"
	"github.com/techstacks/newsroom/postdoc"
)

var (
	minHNPoints int
	concurrency int64
)

func NewCommand() *cobra.Command {
	processCommand := &cobra.Command{
		Use:   "process",
		Short: "Run article and comment analysis over pending posts",
		Args:  cobra.NoArgs,
		Run:   runProcessCommand,
	}

	processCommand.Flags().IntVar(&minHNPoints, "min-points", 100, "Minimum points for Hacker News posts")
	processCommand.Flags().Int64Var(&concurrency, "concurrency", comments.DefaultConcurrency, "Concurrent comment fetches")

	return processCommand
}

func runProcessCommand(cmd *cobra.Command, args []string) {
	pdb, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer pdb.Close()

	store, err := configuration.OpenDocumentStore()
	if err != nil {
		log.Fatal(err)
	}

	pending, err := pdb.PendingPosts()
	if err != nil {
		log.Fatal(err)
	}
	done, err := store.DoneIDs()
	if err != nil {
		log.Fatal(err)
	}

	completer := llm.NewClient(viper.GetString("model"))
	articles := pipeline.NewArticleAnalyzer(completer)
	threads := pipeline.NewCommentAnalyzer(completer)
	threads.Concurrency = concurrency
	threads.Progress = analyze.ProgressPrinter()

	ctx := context.Background()
	var processed, failed, skipped int

	for _, p := range pending {
		// HN posts are indexed unfiltered, so apply the points floor here.
		if p.Subreddit == "" && p.Points <= minHNPoints {
			skipped++
			continue
		}
		if done[p.ID] {
			pdb.MarkCompleted(p.ID)
			skipped++
			continue
		}
		if !pipeline.IsContentURL(p.URL) {
			pdb.MarkFailed(p.ID, "not a content URL")
			skipped++
			continue
		}

		fmt.Printf("Processing %s: %s\n", p.ID, p.Title)
		doc := &postdoc.Document{Post: p}

		if err := articles.Run(ctx, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: article analysis failed for post %s: %v\n", p.ID, err)
			store.Fail(doc, err.Error())
			pdb.MarkFailed(p.ID, err.Error())
			failed++
			continue
		}
		if err := store.Write(doc); err != nil {
			log.Fatal(err)
		}

		if doc.CommentsURL != "" {
			if err := threads.Run(ctx, doc); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: comment analysis failed for post %s: %v\n", p.ID, err)
			} else if err := store.Write(doc); err != nil {
				log.Fatal(err)
			}
		}

		pdb.MarkCompleted(p.ID)
		processed++
	}

	// Pick up documents that got their article analysis on an earlier run
	// but are still missing comment analysis.
	ids, err := store.PendingIDs()
	if err != nil {
		log.Fatal(err)
	}
	for _, id := range ids {
		doc, err := store.Read(id)
		if err != nil || doc.Analyzed() || doc.CommentsURL == "" {
			continue
		}
		fmt.Printf("Analyzing comments for %s: %s\n", doc.ID, doc.Title)
		if err := threads.Run(ctx, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: comment analysis failed for post %s: %v\n", doc.ID, err)
			continue
		}
		if err := store.Write(doc); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("Processing complete. %d processed, %d failed, %d skipped.\n", processed, failed, skipped)
}
