package post

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	postCommand := &cobra.Command{
		Use:   "post",
		Short: "Commands for working with post documents",
		Example: "  # Opens the discussion thread for a post\n" +
			"  " + os.Args[0] + " post open 46978710 --comments",
	}

	postCommand.AddCommand(initListCommand())
	postCommand.AddCommand(initOpenCommand())
	postCommand.AddCommand(initWordcloudCommand())

	return postCommand
}
