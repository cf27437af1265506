package configuration

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/techstacks/newsroom/database"
	"github.com/techstacks/newsroom/postdoc"
	"github.com/techstacks/newsroom/techstacks"
	"github.com/techstacks/newsroom/utils"
)

func OpenExistingDatabase() (pdb *database.PostDB, err error) {
	dbPath := viper.GetString("database")

	var exists bool
	if exists, err = utils.PathExists(dbPath); err == nil {
		if exists {
			pdb, err = database.OpenPostDB(dbPath)
		} else {
			err = fmt.Errorf("Database %q does not exist", dbPath)
		}
	}
	return
}

// OpenDatabase opens the post index, creating it if needed.
func OpenDatabase() (*database.PostDB, error) {
	return database.OpenPostDB(viper.GetString("database"))
}

// OpenDocumentStore opens the per-post document store rooted at posts-dir.
func OpenDocumentStore() (*postdoc.Store, error) {
	return postdoc.Open(viper.GetString("posts-dir"))
}

// NewTechStacksClient builds an API client from the configured base URL and
// the TECHSTACKS_IDENTITY cookie value.
func NewTechStacksClient() (*techstacks.Client, error) {
	identity := os.Getenv("TECHSTACKS_IDENTITY")
	if identity == "" {
		return nil, fmt.Errorf("TECHSTACKS_IDENTITY is not set")
	}
	baseURL := viper.GetString("techstacks-url")
	if baseURL == "" {
		baseURL = techstacks.DefaultBaseURL
	}
	return techstacks.NewClient(utils.TrimmedURL(baseURL), identity), nil
}
