package postdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/techstacks/newsroom/model"
)

// Document is the JSON artifact kept per post: the listing entry plus
// whatever analysis has been attached so far. Sentiment and TopComment stay
// empty until the comment analyzer has run.
type Document struct {
	model.Post
	Type           string             `json:"type,omitempty"`
	Technologies   []string           `json:"technologies,omitempty"`
	RelevanceScore int                `json:"relevance_score,omitempty"`
	Summary        string             `json:"summary,omitempty"`
	Sentiment      string             `json:"sentiment,omitempty"`
	TopComment     *model.CommentNode `json:"top_comment,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Analyzed reports whether the comment analysis already ran for this doc.
func (d *Document) Analyzed() bool {
	return d.Sentiment != "" && d.TopComment != nil
}

// Store keeps post documents as <root>/posts/<id>.json, moving them to
// completed/ or failed/ as the pipeline disposes of them.
type Store struct {
	root string
}

func Open(root string) (*Store, error) {
	for _, dir := range []string{"posts", "completed", "failed"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) path(dir, id string) string {
	return filepath.Join(s.root, dir, id+".json")
}

// Write saves doc under posts/.
func (s *Store) Write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path("posts", doc.ID), data, 0o644)
}

// Read loads the pending document for id.
func (s *Store) Read(id string) (*Document, error) {
	data, err := os.ReadFile(s.path("posts", id))
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding post %s: %w", id, err)
	}
	return &doc, nil
}

// Complete moves the pending document for id to completed/.
func (s *Store) Complete(id string) error {
	return os.Rename(s.path("posts", id), s.path("completed", id))
}

// Fail records the error inside the document and moves it to failed/.
func (s *Store) Fail(doc *Document, errMsg string) error {
	doc.Error = errMsg
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path("failed", doc.ID), data, 0o644); err != nil {
		return err
	}
	// Drop the pending copy if one exists.
	os.Remove(s.path("posts", doc.ID))
	return nil
}

// PendingIDs lists the IDs of documents still under posts/, sorted.
func (s *Store) PendingIDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "posts"))
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// DoneIDs lists IDs already present in posts/, completed/ or failed/, so a
// listing sweep can skip work that exists on disk but not in the index.
func (s *Store) DoneIDs() (map[string]bool, error) {
	done := make(map[string]bool)
	for _, dir := range []string{"posts", "completed", "failed"} {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			done[strings.TrimSuffix(name, ".json")] = true
		}
	}
	return done, nil
}
