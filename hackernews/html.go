package hackernews

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// HTMLToText converts HN comment HTML to plain text. HN markup is limited:
// <p> between paragraphs, <i> for italics, <a> for links, <code> inline and
// <pre><code> for code blocks, plus HTML entities.
//
// Paragraphs become blank-line separated text, links become "text (url)",
// inline code is backtick quoted and code blocks are fenced. Anything else
// is stripped.
func HTMLToText(raw string) string {
	if raw == "" {
		return ""
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	var inPre bool
	var anchorURL string

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return strings.TrimSpace(sb.String())

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "p":
				sb.WriteString("\n\n")
			case "br":
				sb.WriteString("\n")
			case "i", "em":
				sb.WriteString("*")
			case "pre":
				inPre = true
			case "code":
				if inPre {
					sb.WriteString("\n```\n")
				} else {
					sb.WriteString("`")
				}
			case "a":
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						anchorURL = attr.Val
					}
				}
			}

		case xhtml.EndTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "i", "em":
				sb.WriteString("*")
			case "pre":
				inPre = false
			case "code":
				if inPre {
					sb.WriteString("\n```\n")
				} else {
					sb.WriteString("`")
				}
			case "a":
				if anchorURL != "" {
					sb.WriteString(" (")
					sb.WriteString(anchorURL)
					sb.WriteString(")")
					anchorURL = ""
				}
			}

		case xhtml.TextToken:
			// Token() hands back text with entities already decoded.
			sb.WriteString(tokenizer.Token().Data)
		}
	}
}
