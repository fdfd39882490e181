package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nest-agency/pitch-cli/internal/config"
)

func initTestConfig() {
	cfg = &config.Config{}
	cfg.Notion.Token = "ntn_token"
	cfg.Notion.PitchDB = "pitch-db-id"
	cfg.OpenAI.Key = "sk-openai"
	cfg.OpenAI.BaseURL = "https://api.openai.com"
	cfg.OpenAI.Model = "gpt-4"
	cfg.Anthropic.Key = "sk-ant"
	cfg.Anthropic.Model = "claude-3-5-sonnet-20241022"
	cfg.Stages.StrategicAnalysis = config.StageConfig{Temperature: 0.1, MaxTokens: 2500}
	cfg.Stages.NarrativeDevelopment = config.StageConfig{Temperature: 0.3, MaxTokens: 1500}
	cfg.Stages.PlanIntegration = config.StageConfig{Temperature: 0.1, MaxTokens: 4000}
}

func TestStageParams_NarrativeFallsBackToAnthropicModel(t *testing.T) {
	initTestConfig()

	p := stageParams()
	assert.Equal(t, "claude-3-5-sonnet-20241022", p.NarrativeDevelopment.Model)
	assert.Equal(t, 0.3, p.NarrativeDevelopment.Temperature)
	assert.Equal(t, 1500, p.NarrativeDevelopment.MaxTokens)
}

func TestStageParams_ExplicitStageModelWins(t *testing.T) {
	initTestConfig()
	cfg.Stages.NarrativeDevelopment.Model = "claude-3-5-haiku-20241022"

	p := stageParams()
	assert.Equal(t, "claude-3-5-haiku-20241022", p.NarrativeDevelopment.Model)
}

func TestStageParams_ChatStagesLeaveModelToClient(t *testing.T) {
	initTestConfig()

	p := stageParams()
	assert.Empty(t, p.StrategicAnalysis.Model)
	assert.Empty(t, p.PlanIntegration.Model)
	assert.Equal(t, 2500, p.StrategicAnalysis.MaxTokens)
	assert.Equal(t, 4000, p.PlanIntegration.MaxTokens)
}

func TestNewExtractor_Builds(t *testing.T) {
	initTestConfig()
	require.NotNil(t, newExtractor())
}

func TestNewGenerator_Builds(t *testing.T) {
	initTestConfig()
	require.NotNil(t, newGenerator())
}
