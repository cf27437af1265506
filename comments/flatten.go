package comments

import (
	"fmt"
	"strings"

	"github.com/techstacks/newsroom/model"
)

// TruncationMarker is appended when rendered output is cut at the character
// limit. Downstream prompts key off this exact string.
const TruncationMarker = "\n\n[...comments truncated...]"

const (
	// DefaultMaxEntries and DefaultMaxChars bound the rendered digest
	// handed to the analysis model.
	DefaultMaxEntries = 200
	DefaultMaxChars   = 30000
)

// FlattenTree projects the tree into a pre-order list of entries, the root
// at the given depth and each child one level deeper.
func FlattenTree(tree *model.CommentNode, depth int) []model.FlatEntry {
	if tree == nil {
		return nil
	}
	entries := []model.FlatEntry{{Author: tree.Author, Text: tree.Text, Depth: depth}}
	for _, child := range tree.Children {
		entries = append(entries, FlattenTree(child, depth+1)...)
	}
	return entries
}

// Flatten projects every tree of the forest, in order, into one pre-order
// list. Forest roots are at depth 0.
func Flatten(forest model.Forest) []model.FlatEntry {
	var entries []model.FlatEntry
	for _, tree := range forest {
		entries = append(entries, FlattenTree(tree, 0)...)
	}
	return entries
}

// Render produces the line-oriented digest of the forest: one
// "{indent}[{author}]: {body}" line plus a blank line per entry, indented
// two spaces per depth level.
//
// maxEntries is applied first and is structural: once reached, no further
// entries are emitted at all. The character limit is then a plain suffix cut
// on the joined text, marked with TruncationMarker.
func Render(forest model.Forest, maxEntries, maxChars int) string {
	var lines []string
	count := 0
	for _, tree := range forest {
		for _, e := range FlattenTree(tree, 0) {
			if count >= maxEntries {
				break
			}
			indent := strings.Repeat("  ", e.Depth)
			lines = append(lines, fmt.Sprintf("%s[%s]: %s", indent, e.Author, e.Text))
			lines = append(lines, "")
			count++
		}
		if count >= maxEntries {
			break
		}
	}

	text := strings.Join(lines, "\n")
	if len(text) > maxChars {
		text = text[:maxChars] + TruncationMarker
	}
	return text
}
