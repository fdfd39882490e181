package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validation modes. Each command validates the mode matching what it
// will actually touch, so a missing Google key does not block listing
// clients.
const (
	ModeServe    = "serve"    // Slack server: everything
	ModeRun      = "run"      // one-shot: Notion + LLM
	ModeGenerate = "generate" // offline record file: LLM only
	ModeClients  = "clients"  // roster listing: Notion only
)

// Validate checks that every setting the given mode requires is
// present and in range. All problems are reported in one error so a
// bare deployment can be fixed in a single pass.
func (c *Config) Validate(mode string) error {
	var problems []string

	need := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, key+" is required")
		}
	}

	switch mode {
	case ModeServe:
		need(c.Slack.BotToken, "slack.bot_token")
		need(c.Slack.SigningSecret, "slack.signing_secret")
		need(c.Notion.Token, "notion.token")
		need(c.Notion.PitchDB, "notion.pitch_db")
		need(c.OpenAI.Key, "openai.key")
		need(c.Anthropic.Key, "anthropic.key")
		need(c.Google.CredentialsFile, "google.credentials_file")
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Server.DrainTimeoutSecs < 0 {
			problems = append(problems, "server.drain_timeout_secs must be >= 0")
		}
		problems = append(problems, c.stageProblems()...)
	case ModeRun:
		need(c.Notion.Token, "notion.token")
		need(c.Notion.PitchDB, "notion.pitch_db")
		need(c.OpenAI.Key, "openai.key")
		need(c.Anthropic.Key, "anthropic.key")
		problems = append(problems, c.stageProblems()...)
	case ModeGenerate:
		need(c.OpenAI.Key, "openai.key")
		need(c.Anthropic.Key, "anthropic.key")
		problems = append(problems, c.stageProblems()...)
	case ModeClients:
		need(c.Notion.Token, "notion.token")
		need(c.Notion.PitchDB, "notion.pitch_db")
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) stageProblems() []string {
	var problems []string
	for _, stage := range []struct {
		name string
		cfg  StageConfig
	}{
		{"strategic_analysis", c.Stages.StrategicAnalysis},
		{"narrative_development", c.Stages.NarrativeDevelopment},
		{"plan_integration", c.Stages.PlanIntegration},
	} {
		name, sc := stage.name, stage.cfg
		if sc.Temperature < 0 || sc.Temperature > 2 {
			problems = append(problems, fmt.Sprintf("stages.%s.temperature must be between 0 and 2", name))
		}
		if sc.MaxTokens <= 0 {
			problems = append(problems, fmt.Sprintf("stages.%s.max_tokens must be > 0", name))
		}
	}
	return problems
}
