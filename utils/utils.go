package utils

import (
	"os"
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`[\s_]+`)
	dashRunRe    = regexp.MustCompile(`-+`)
)

// Slugify converts a post title into a URL-safe slug.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonWordRe.ReplaceAllString(slug, "")
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = dashRunRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// TrimmedURL canonicalizes a URL for index lookups by dropping any trailing
// slashes.
func TrimmedURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

// PathExists reports whether path exists, regardless of type.
func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
