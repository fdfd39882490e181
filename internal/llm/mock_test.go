package llm

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nest-agency/pitch-cli/pkg/anthropic"
	"github.com/nest-agency/pitch-cli/pkg/openai"
)

// mockOpenAI implements openai.Client for testing.
type mockOpenAI struct {
	mock.Mock
}

func (m *mockOpenAI) ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openai.ChatCompletionResponse), args.Error(1)
}

// mockAnthropic implements anthropic.Client for testing.
type mockAnthropic struct {
	mock.Mock
}

func (m *mockAnthropic) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}
