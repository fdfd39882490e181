package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Slack     SlackConfig     `yaml:"slack" mapstructure:"slack"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Team      TeamConfig      `yaml:"team" mapstructure:"team"`
	Stages    StagesConfig    `yaml:"stages" mapstructure:"stages"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SlackConfig holds Slack app credentials.
type SlackConfig struct {
	BotToken      string `yaml:"bot_token" mapstructure:"bot_token"`
	SigningSecret string `yaml:"signing_secret" mapstructure:"signing_secret"`
}

// NotionConfig holds the Notion integration token and the pitch
// database ID.
type NotionConfig struct {
	Token   string `yaml:"token" mapstructure:"token"`
	PitchDB string `yaml:"pitch_db" mapstructure:"pitch_db"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// GoogleConfig holds the Google service-account key location.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
}

// TeamConfig lists who finished documents are shared with.
type TeamConfig struct {
	Emails []string `yaml:"emails" mapstructure:"emails"`
}

// StagesConfig carries per-stage generation parameters.
type StagesConfig struct {
	StrategicAnalysis    StageConfig `yaml:"strategic_analysis" mapstructure:"strategic_analysis"`
	NarrativeDevelopment StageConfig `yaml:"narrative_development" mapstructure:"narrative_development"`
	PlanIntegration      StageConfig `yaml:"plan_integration" mapstructure:"plan_integration"`
}

// StageConfig overrides one stage's model and sampling parameters.
// An empty model means the backend's configured default.
type StageConfig struct {
	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the Slack webhook server.
type ServerConfig struct {
	Port             int `yaml:"port" mapstructure:"port"`
	DrainTimeoutSecs int `yaml:"drain_timeout_secs" mapstructure:"drain_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PITCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key is registered here, empty where no real
	// default exists: viper only unmarshals env values for keys it
	// already knows about.
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.signing_secret", "")
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.pitch_db", "")
	v.SetDefault("openai.key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("google.credentials_file", "")
	v.SetDefault("team.emails", []string{})
	v.SetDefault("stages.strategic_analysis.model", "")
	v.SetDefault("stages.strategic_analysis.temperature", 0.1)
	v.SetDefault("stages.strategic_analysis.max_tokens", 2500)
	v.SetDefault("stages.narrative_development.model", "")
	v.SetDefault("stages.narrative_development.temperature", 0.3)
	v.SetDefault("stages.narrative_development.max_tokens", 1500)
	v.SetDefault("stages.plan_integration.model", "")
	v.SetDefault("stages.plan_integration.temperature", 0.1)
	v.SetDefault("stages.plan_integration.max_tokens", 4000)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.drain_timeout_secs", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
