package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"todosummary/pkg/llm"
	"todosummary/pkg/notify"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPort           = "8080"
	DefaultRequestTimeout = 30 * time.Second
	MinRequestTimeout     = 100 * time.Millisecond
	DefaultFrontendURL    = "http://localhost:3000"
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	FrontendURL string
	LogLevel    slog.Level

	RequestTimeout time.Duration

	SummarizerProvider string
	Gemini             llm.GeminiConfig
	OpenAI             llm.OpenAIConfig
	Anthropic          llm.AnthropicConfig

	Notifier          string
	SlackWebhookURL   string
	DiscordWebhookURL string
}

// Load reads envFiles (or .env when none are given) into the process
// environment, then resolves every setting through viper with defaults.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("FRONTEND_URL", DefaultFrontendURL)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", DefaultRequestTimeout.String())
	v.SetDefault("SUMMARIZER_PROVIDER", llm.ProviderGemini)
	v.SetDefault("GEMINI_MODEL", llm.DefaultGeminiModel)
	v.SetDefault("GEMINI_BASE_URL", llm.DefaultGeminiBaseURL)
	v.SetDefault("OPENAI_MODEL", llm.DefaultOpenAIModel)
	v.SetDefault("ANTHROPIC_MODEL", llm.DefaultAnthropicModel)
	v.SetDefault("NOTIFIER", notify.KindSlack)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	// time.ParseDuration rejects bare numbers, which viper would read as nanoseconds.
	timeout, err := time.ParseDuration(v.GetString("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RedisURL:       v.GetString("REDIS_URL"),
		FrontendURL:    v.GetString("FRONTEND_URL"),
		LogLevel:       level,
		RequestTimeout: timeout,

		SummarizerProvider: strings.ToLower(v.GetString("SUMMARIZER_PROVIDER")),
		Gemini: llm.GeminiConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			BaseURL: v.GetString("GEMINI_BASE_URL"),
			Model:   v.GetString("GEMINI_MODEL"),
			Timeout: timeout,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  v.GetString("OPENAI_API_KEY"),
			BaseURL: v.GetString("OPENAI_BASE_URL"),
			Model:   v.GetString("OPENAI_MODEL"),
			Timeout: timeout,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey:  v.GetString("ANTHROPIC_API_KEY"),
			BaseURL: v.GetString("ANTHROPIC_BASE_URL"),
			Model:   v.GetString("ANTHROPIC_MODEL"),
			Timeout: timeout,
		},

		Notifier:          strings.ToLower(v.GetString("NOTIFIER")),
		SlackWebhookURL:   v.GetString("SLACK_WEBHOOK_URL"),
		DiscordWebhookURL: v.GetString("DISCORD_WEBHOOK_URL"),
	}

	return cfg, nil
}

// Validate checks that the selected summarizer and notifier are usable.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	if c.RequestTimeout < MinRequestTimeout {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be at least %s", MinRequestTimeout))
	}

	switch c.SummarizerProvider {
	case llm.ProviderGemini:
		if c.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini summarizer"))
		}
	case llm.ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai summarizer"))
		}
	case llm.ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for the anthropic summarizer"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SUMMARIZER_PROVIDER %q", c.SummarizerProvider))
	}

	switch c.Notifier {
	case notify.KindSlack:
		if c.SlackWebhookURL == "" {
			errs = append(errs, errors.New("SLACK_WEBHOOK_URL is required for the slack notifier"))
		}
	case notify.KindDiscord:
		if c.DiscordWebhookURL == "" {
			errs = append(errs, errors.New("DISCORD_WEBHOOK_URL is required for the discord notifier"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFIER %q", c.Notifier))
	}

	return errors.Join(errs...)
}

// LogValue keeps secrets out of structured logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Port),
		slog.Bool("database_configured", c.DatabaseURL != ""),
		slog.Bool("redis_configured", c.RedisURL != ""),
		slog.String("frontend_url", c.FrontendURL),
		slog.String("log_level", c.LogLevel.String()),
		slog.Duration("request_timeout", c.RequestTimeout),
		slog.String("summarizer", c.SummarizerProvider),
		slog.String("notifier", c.Notifier),
	)
}
