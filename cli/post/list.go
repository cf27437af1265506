package post

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/techstacks/newsroom/configuration"
)

func initListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists pending post documents",
		Args:  cobra.NoArgs,
		Run:   runListCommand,
	}
	return listCommand
}

func runListCommand(cmd *cobra.Command, args []string) {
	store, err := configuration.OpenDocumentStore()
	if err != nil {
		log.Fatal(err)
	}

	ids, err := store.PendingIDs()
	if err != nil {
		log.Fatal(err)
	}
	for _, id := range ids {
		doc, err := store.Read(id)
		if err != nil {
			log.Fatal(err)
		}
		state := "article"
		if doc.Analyzed() {
			state = "analyzed"
		}
		fmt.Printf("%s: %s [%d points, %s] (%s)\n", id, doc.Title, doc.Points, state, doc.URL)
	}

	if pdb, err := configuration.OpenExistingDatabase(); err == nil {
		defer pdb.Close()
		if counts, err := pdb.StatusCounts(); err == nil {
			fmt.Printf("Index: %d pending, %d completed, %d failed\n",
				counts["pending"], counts["completed"], counts["failed"])
		}
	}
}
