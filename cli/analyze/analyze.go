package analyze

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bit101/go-ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/techstacks/newsroom/comments"
	"github.com/techstacks/newsroom/configuration"
	"github.com/techstacks/newsroom/hackernews"
	"github.com/techstacks/newsroom/llm"
	"github.com/techstacks/newsroom/pipeline"
	"github.com/techstacks/newsroom/postdoc"
	"golang.org/x/term"
)

var (
	maxDepth    int
	maxEntries  int
	maxChars    int
	concurrency int64
)

func NewCommand() *cobra.Command {
	analyzeCommand := &cobra.Command{
		Use:   "analyze <post_id | comments_URL>",
		Short: "Analyze the comment thread of an indexed post",
		Args:  cobra.ExactArgs(1),
		Example: "" +
			"  " + os.Args[0] + " analyze 46978710\n" +
			"  " + os.Args[0] + " analyze https://news.ycombinator.com/item?id=46978710",
		Run: runAnalyzeCommand,
	}

	analyzeCommand.Flags().IntVar(&maxDepth, "max-depth", comments.DefaultMaxDepth, "Maximum comment tree depth to fetch")
	analyzeCommand.Flags().IntVar(&maxEntries, "max-entries", comments.DefaultMaxEntries, "Maximum comments to send for analysis")
	analyzeCommand.Flags().IntVar(&maxChars, "max-chars", comments.DefaultMaxChars, "Maximum characters of comments to send for analysis")
	analyzeCommand.Flags().Int64Var(&concurrency, "concurrency", comments.DefaultConcurrency, "Concurrent comment fetches")

	return analyzeCommand
}

// ProgressPrinter reports fetch progress to stderr, colorized on a terminal.
func ProgressPrinter() comments.Progress {
	isTty := term.IsTerminal(int(os.Stderr.Fd()))
	return func(done, total, dropped int) {
		line := fmt.Sprintf("   Fetched %d/%d top-level threads", done, total)
		if dropped > 0 {
			line += fmt.Sprintf(" (%d dropped)", dropped)
		}
		if isTty {
			ansi.Fprintln(os.Stderr, ansi.Green, line)
		} else {
			fmt.Fprintln(os.Stderr, line)
		}
	}
}

func loadDocument(store *postdoc.Store, ref string) (*postdoc.Document, error) {
	if doc, err := store.Read(ref); err == nil {
		return doc, nil
	}
	id, err := hackernews.ParseItemID(ref)
	if err != nil {
		return nil, fmt.Errorf("no post document for %q", ref)
	}
	return store.Read(strconv.Itoa(id))
}

func runAnalyzeCommand(cmd *cobra.Command, args []string) {
	store, err := configuration.OpenDocumentStore()
	if err != nil {
		log.Fatal(err)
	}

	doc, err := loadDocument(store, args[0])
	if err != nil {
		log.Fatal(err)
	}
	if doc.Analyzed() {
		fmt.Printf("Post %s already has sentiment and top comment\n", doc.ID)
		return
	}

	analyzer := pipeline.NewCommentAnalyzer(llm.NewClient(viper.GetString("model")))
	analyzer.MaxDepth = maxDepth
	analyzer.MaxEntries = maxEntries
	analyzer.MaxChars = maxChars
	analyzer.Concurrency = concurrency
	analyzer.Progress = ProgressPrinter()

	fmt.Fprintf(os.Stderr, "Analyzing comments for post %s ...\n", doc.ID)
	if err := analyzer.Run(context.Background(), doc); err != nil {
		log.Fatal(err)
	}
	if err := store.Write(doc); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Saved sentiment analysis for post %s\n", doc.ID)
}
