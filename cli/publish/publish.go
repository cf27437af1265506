package publish

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/techstacks/newsroom/configuration"
)

func NewCommand() *cobra.Command {
	publishCommand := &cobra.Command{
		Use:   "publish [post_id]",
		Short: "Import analyzed posts into TechStacks",
		Args:  cobra.MaximumNArgs(1),
		Example: "" +
			"  " + os.Args[0] + " publish\n" +
			"  " + os.Args[0] + " publish 46978710",
		Run: runPublishCommand,
	}
	return publishCommand
}

func runPublishCommand(cmd *cobra.Command, args []string) {
	store, err := configuration.OpenDocumentStore()
	if err != nil {
		log.Fatal(err)
	}
	client, err := configuration.NewTechStacksClient()
	if err != nil {
		log.Fatal(err)
	}

	var ids []string
	if len(args) > 0 {
		ids = args
	} else {
		if ids, err = store.PendingIDs(); err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()

	fmt.Println("Syncing posts...")
	if err := client.SyncStats(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: SyncStats failed: %v\n", err)
	}

	if len(ids) == 0 {
		fmt.Println("No posts to import.")
		return
	}

	fmt.Printf("Importing %d posts...\n", len(ids))
	failures := 0
	for _, id := range ids {
		doc, err := store.Read(id)
		if err != nil {
			log.Fatalf("Post file not found for %s: %v", id, err)
		}
		fmt.Printf("  Importing post %s: %s\n", id, doc.Title)

		if err := client.ImportNewsPost(ctx, doc); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
			if err := store.Fail(doc, err.Error()); err != nil {
				log.Fatal(err)
			}
			failures++
			continue
		}
		if err := store.Complete(id); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Publishing complete. %d succeeded, %d failed.\n", len(ids)-failures, failures)
}
