package main

import (
	"context"

	"github.com/nest-agency/pitch-cli/internal/config"
	"github.com/nest-agency/pitch-cli/internal/extract"
	"github.com/nest-agency/pitch-cli/internal/llm"
	"github.com/nest-agency/pitch-cli/internal/pipeline"
	"github.com/nest-agency/pitch-cli/internal/publish"
	anthropicpkg "github.com/nest-agency/pitch-cli/pkg/anthropic"
	"github.com/nest-agency/pitch-cli/pkg/gdocs"
	"github.com/nest-agency/pitch-cli/pkg/notion"
	"github.com/nest-agency/pitch-cli/pkg/openai"
)

// newExtractor builds the Notion-backed client extractor.
func newExtractor() *extract.Extractor {
	return extract.NewExtractor(notion.NewClient(cfg.Notion.Token), cfg.Notion.PitchDB)
}

// newGenerator builds the three-stage generator over both completion
// backends.
func newGenerator() *pipeline.Generator {
	openaiClient := openai.NewClient(cfg.OpenAI.Key,
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithModel(cfg.OpenAI.Model),
	)
	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)

	return pipeline.NewGenerator(
		llm.NewChatCompleter(openaiClient),
		llm.NewPromptCompleter(anthropicClient),
		stageParams(),
	)
}

// newPublisher builds the Google Docs publisher from the configured
// service-account key.
func newPublisher(ctx context.Context) (*publish.Publisher, error) {
	hc, err := gdocs.ServiceAccountClient(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return publish.NewPublisher(gdocs.NewClient(hc), cfg.Team.Emails), nil
}

// stageParams resolves the per-stage generation parameters. The chat
// stages may leave the model empty; the OpenAI client carries the
// configured default. The narrative stage takes the configured
// Anthropic model here because that client only knows its compiled
// default.
func stageParams() pipeline.StageParams {
	narrative := stageLLM(cfg.Stages.NarrativeDevelopment)
	if narrative.Model == "" {
		narrative.Model = cfg.Anthropic.Model
	}

	return pipeline.StageParams{
		StrategicAnalysis:    stageLLM(cfg.Stages.StrategicAnalysis),
		NarrativeDevelopment: narrative,
		PlanIntegration:      stageLLM(cfg.Stages.PlanIntegration),
	}
}

func stageLLM(sc config.StageConfig) llm.Params {
	return llm.Params{
		Model:       sc.Model,
		Temperature: sc.Temperature,
		MaxTokens:   sc.MaxTokens,
	}
}
