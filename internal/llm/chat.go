package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nest-agency/pitch-cli/pkg/openai"
)

// ChatCompleter adapts the chat-style OpenAI backend to the Completer
// interface. The system text becomes a system-role message ahead of
// the user prompt.
type ChatCompleter struct {
	client openai.Client
}

// NewChatCompleter wraps an OpenAI client.
func NewChatCompleter(client openai.Client) *ChatCompleter {
	return &ChatCompleter{client: client}
}

func (c *ChatCompleter) Complete(ctx context.Context, req Request) (string, error) {
	var messages []openai.Message
	if req.System != "" {
		messages = append(messages, openai.Message{Role: openai.RoleSystem, Content: req.System})
	}
	messages = append(messages, openai.Message{Role: openai.RoleUser, Content: req.Prompt})

	apiReq := openai.ChatCompletionRequest{
		Model:       req.Params.Model,
		Messages:    messages,
		Temperature: &req.Params.Temperature,
	}
	if req.Params.MaxTokens > 0 {
		apiReq.MaxTokens = &req.Params.MaxTokens
	}

	resp, err := c.client.ChatCompletion(ctx, apiReq)
	if err != nil {
		return "", eris.Wrap(err, "llm: chat completion")
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	zap.L().Info("chat completion",
		zap.String("stage", req.Label),
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return text, nil
}
