package pipeline

import "strings"

var blacklistedDomains = []string{
	"reddit.com",
	"ycombinator.com",
}

var imageExtensions = []string{".png", ".jpg", ".svg", ".webp"}

func isImageURL(url string) bool {
	if strings.HasPrefix(url, "https://i.redd.it") || strings.Contains(url, "imgur.com") {
		return true
	}
	lower := strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isVideoURL(url string) bool {
	return strings.HasPrefix(url, "https://v.redd.it")
}

func isBlacklistedURL(url string) bool {
	for _, domain := range blacklistedDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

// IsContentURL reports whether url points at an article page worth
// analyzing, as opposed to an image, a video or a discussion-only link.
func IsContentURL(url string) bool {
	return strings.HasPrefix(url, "http") &&
		!isImageURL(url) && !isVideoURL(url) && !isBlacklistedURL(url)
}
