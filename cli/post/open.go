package post

import (
	"log"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/techstacks/newsroom/configuration"
)

var openComments bool

func initOpenCommand() *cobra.Command {
	openCommand := &cobra.Command{
		Use:   "open <post_id>",
		Short: "Opens a post in a browser.",
		Args:  cobra.ExactArgs(1),
		Run:   runOpenCommand,
	}
	openCommand.Flags().BoolVar(&openComments, "comments", false, "Open the discussion thread instead of the article")
	return openCommand
}

func runOpenCommand(cmd *cobra.Command, args []string) {
	store, err := configuration.OpenDocumentStore()
	if err != nil {
		log.Fatal(err)
	}
	doc, err := store.Read(args[0])
	if err != nil {
		log.Fatal(err)
	}

	url := doc.URL
	if openComments || url == "" {
		url = doc.CommentsURL
	}
	if url == "" {
		log.Fatalf("Post %s has no URL to open", doc.ID)
	}
	browser.OpenURL(url)
}
