package top

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/techstacks/newsroom/configuration"
	"github.com/techstacks/newsroom/hackernews"
	"github.com/techstacks/newsroom/model"
	"github.com/techstacks/newsroom/reddit"
)

var (
	pages           int
	subreddits      []string
	minRedditPoints int
	redditLimit     int
)

func NewCommand() *cobra.Command {
	topCommand := &cobra.Command{
		Use:   "top [hn|reddit]",
		Short: "Fetch top posts into the index",
		Args:  cobra.MaximumNArgs(1),
		Example: "" +
			"  " + os.Args[0] + " top\n" +
			"  " + os.Args[0] + " top reddit",
		Run: runTopCommand,
	}

	topCommand.Flags().IntVar(&pages, "pages", 1, "Hacker News front pages to fetch")
	topCommand.Flags().StringSliceVar(&subreddits, "subreddits", reddit.DefaultSubreddits, "Subreddits to scan")
	topCommand.Flags().IntVar(&minRedditPoints, "min-reddit-points", reddit.MinPoints, "Minimum score for Reddit posts")
	topCommand.Flags().IntVar(&redditLimit, "reddit-limit", reddit.TopLimit, "Maximum Reddit posts to keep")

	return topCommand
}

func runTopCommand(cmd *cobra.Command, args []string) {
	source := ""
	if len(args) > 0 {
		source = args[0]
	}

	pdb, err := configuration.OpenDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer pdb.Close()

	ctx := context.Background()

	var posts []model.Post
	if source == "" || source == "hn" {
		client := hackernews.NewClient()
		for page := 1; page <= pages; page++ {
			pagePosts, err := client.FetchFrontPage(ctx, page)
			if err != nil {
				log.Fatalf("Fetching HN front page %d: %v", page, err)
			}
			posts = append(posts, pagePosts...)
		}
		fmt.Printf("Fetched %d Hacker News posts\n", len(posts))
	}

	if source == "" || source == "reddit" {
		client, err := reddit.NewClient()
		if err != nil {
			log.Fatal(err)
		}
		redditPosts := client.FetchTop(ctx, subreddits, minRedditPoints, redditLimit,
			func(subreddit string, err error) {
				fmt.Fprintf(os.Stderr, "Warning: r/%s: %v\n", subreddit, err)
			})
		fmt.Printf("Fetched %d Reddit posts with > %d points\n", len(redditPosts), minRedditPoints)
		posts = append(posts, redditPosts...)
	}

	added, err := pdb.UpsertPosts(posts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Indexed %d new posts (%d seen before)\n", added, len(posts)-added)
}
