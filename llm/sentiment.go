package llm

import (
	"context"
	"fmt"
)

// sentimentPrompt instructs the model to summarize a discussion thread as a
// markdown sentiment analysis wrapped in a single-field JSON object.
const sentimentPrompt = `You are an expert at analyzing online discussion threads. You will receive the full comment thread from a discussion post. Analyze the overall sentiment and key themes, then produce a markdown summary.

Your output must be a JSON object with exactly this schema (no markdown fences, just raw JSON):

{
  "sentiment": "string - markdown-formatted sentiment analysis"
}

The "sentiment" field should contain well-structured markdown with these sections:

## Overall Sentiment
A 1-2 sentence summary of the overall tone (positive, negative, mixed, etc.) with an approximate breakdown (e.g. "~60% negative, ~30% neutral, ~10% positive").

## Key Themes
Bullet points covering the main topics and arguments being discussed.

## Notable Perspectives
2-4 standout comments or viewpoints that represent the range of opinions, paraphrased and attributed by username.

## Consensus & Disagreements
What do commenters generally agree on? Where are the main fault lines?

Rules:
- Be objective and balanced - represent all sides fairly
- Use specific examples and usernames from the comments
- Keep the total output under 500 words
- Return ONLY valid JSON`

// AnalyzeSentiment asks the model for a sentiment summary of a rendered
// comment digest and recovers the markdown from its reply.
func AnalyzeSentiment(ctx context.Context, c Completer, title, commentsText string) (string, error) {
	user := fmt.Sprintf("Post Title: %s\n\n--- COMMENTS ---\n%s", title, commentsText)

	reply, err := c.Complete(ctx, sentimentPrompt, user)
	if err != nil {
		return "", err
	}

	var out struct {
		Sentiment string `json:"sentiment"`
	}
	if err := ExtractInto(reply, &out); err != nil {
		return "", err
	}
	if out.Sentiment == "" {
		return "", fmt.Errorf("%w: reply has no sentiment field", ErrMalformedOutput)
	}
	return out.Sentiment, nil
}
