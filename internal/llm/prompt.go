package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nest-agency/pitch-cli/pkg/anthropic"
)

// Anthropic requires max_tokens on every call.
const defaultPromptMaxTokens = 1024

// PromptCompleter adapts the single-prompt Anthropic backend to the
// Completer interface. The prompt travels as one user message; the
// system text rides alongside.
type PromptCompleter struct {
	client anthropic.Client
}

// NewPromptCompleter wraps an Anthropic client.
func NewPromptCompleter(client anthropic.Client) *PromptCompleter {
	return &PromptCompleter{client: client}
}

func (c *PromptCompleter) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.Params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultPromptMaxTokens
	}

	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       req.Params.Model,
		MaxTokens:   int64(maxTokens),
		System:      req.System,
		Messages:    []anthropic.Message{{Role: "user", Content: req.Prompt}},
		Temperature: &req.Params.Temperature,
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: prompt completion")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}

	resp.Usage.LogCost(resp.Model, req.Label)

	return text, nil
}
