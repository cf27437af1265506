package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedOutput reports that no strategy could recover well-formed JSON
// from a model reply. It is never papered over with a default value;
// guessing a record shape here would corrupt whatever consumes it.
var ErrMalformedOutput = errors.New("malformed model output")

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\n?")
	fenceCloseRe = regexp.MustCompile("\n?[ \t]*```$")
)

// Extract recovers a JSON document from free-form model output. Models are
// unreliable about exact formatting, so a chain of increasingly permissive
// strategies is tried against the original text, first success wins:
//
//  1. parse the text verbatim
//  2. strip leading/trailing code fences (optionally language-tagged)
//  3. take the span from the first '{' or '[' to the last '}' or ']'
//
// Extract only guarantees well-formedness; validating the shape of the
// document is the caller's job.
func Extract(text string) (json.RawMessage, error) {
	for _, strategy := range []func(string) string{verbatim, unfenced, bracketSpan} {
		candidate := strategy(text)
		if candidate == "" {
			continue
		}
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, preview(text))
}

// ExtractInto recovers a JSON document from text and decodes it into v.
func ExtractInto(text string, v any) error {
	raw, err := Extract(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}

func verbatim(text string) string {
	return strings.TrimSpace(text)
}

func unfenced(text string) string {
	trimmed := strings.TrimSpace(text)
	cleaned := fenceOpenRe.ReplaceAllString(trimmed, "")
	cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	if cleaned == trimmed {
		return ""
	}
	return strings.TrimSpace(cleaned)
}

// bracketSpan cuts from the first opening bracket to the last closing
// bracket. Greedy on purpose: nested structures stay intact and trailing
// prose falls away.
func bracketSpan(text string) string {
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 200 {
		return text[:200] + "..."
	}
	return text
}
