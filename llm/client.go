package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-3-5-sonnet-latest"

const maxResponseTokens = 4096

// Completer is the text-generation boundary: one system instruction, one
// user message, raw text back.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client calls the Anthropic messages API. The API key is taken from the
// ANTHROPIC_API_KEY environment variable by the SDK.
type Client struct {
	api   anthropic.Client
	model string
}

func NewClient(model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:   anthropic.NewClient(),
		model: model,
	}
}

// Complete sends one chat turn and returns the concatenated text blocks of
// the reply.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxResponseTokens,
		Temperature: anthropic.Float(0.3),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages API: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("model %s returned an empty reply", c.model)
	}
	return text, nil
}
