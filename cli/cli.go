package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/techstacks/newsroom/cli/analyze"
	"github.com/techstacks/newsroom/cli/post"
	"github.com/techstacks/newsroom/cli/process"
	"github.com/techstacks/newsroom/cli/publish"
	"github.com/techstacks/newsroom/cli/top"
	"github.com/techstacks/newsroom/llm"
	"github.com/techstacks/newsroom/techstacks"
)

var (
	dbPath        string
	postsDir      string
	modelName     string
	techstacksURL string
)

func NewCommand() *cobra.Command {
	newsroomCli := &cobra.Command{
		Use:     "newsroom",
		Short:   "Newsroom CLI",
		Long:    "Tech news aggregation and analysis pipeline",
		Example: fmt.Sprintf("  %s <command> [flags...]", os.Args[0]),
	}

	newsroomCli.PersistentFlags().StringVar(&dbPath, "database", "newsroom.db", "Database filename")
	newsroomCli.PersistentFlags().StringVar(&postsDir, "posts-dir", ".", "Directory holding the posts/, completed/ and failed/ document trees")
	newsroomCli.PersistentFlags().StringVar(&modelName, "model", llm.DefaultModel, "Model for analysis")
	newsroomCli.PersistentFlags().StringVar(&techstacksURL, "techstacks-url", techstacks.DefaultBaseURL, "TechStacks base URL")
	viper.BindPFlag("database", newsroomCli.PersistentFlags().Lookup("database"))
	viper.BindPFlag("posts-dir", newsroomCli.PersistentFlags().Lookup("posts-dir"))
	viper.BindPFlag("model", newsroomCli.PersistentFlags().Lookup("model"))
	viper.BindPFlag("techstacks-url", newsroomCli.PersistentFlags().Lookup("techstacks-url"))

	newsroomCli.AddCommand(top.NewCommand())
	newsroomCli.AddCommand(analyze.NewCommand())
	newsroomCli.AddCommand(process.NewCommand())
	newsroomCli.AddCommand(publish.NewCommand())
	newsroomCli.AddCommand(post.NewCommand())

	return newsroomCli
}
