package app

import (
	"context"
	"log/slog"
	"testing"
	"todosummary/internal/config"
	"todosummary/internal/model"
	"todosummary/internal/summary"
	"todosummary/pkg/llm"
	"todosummary/pkg/notify"

	"github.com/go-playground/assert/v2"
)

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:        ":memory:",
		SummarizerProvider: llm.ProviderGemini,
		Gemini:             llm.GeminiConfig{APIKey: "k"},
		Notifier:           notify.KindSlack,
		SlackWebhookURL:    "http://127.0.0.1:1/hook",
	}
}

func TestNew_WithoutRedis(t *testing.T) {
	a, err := New(context.Background(), testConfig(), slog.Default())
	assert.Equal(t, nil, err)
	defer a.Close()

	assert.Equal(t, true, a.Runs == nil)
	assert.Equal(t, true, a.Redis == nil)
	assert.Equal(t, nil, a.Todos.Ping(context.Background()))

	outcome := a.Service.Run(context.Background())
	assert.Equal(t, model.RunStatusNoPending, outcome.Status)
	assert.Equal(t, summary.MessageNoPending, outcome.Message)
}

func TestNew_BadDatabaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseURL = "mysql://nope"

	_, err := New(context.Background(), cfg, slog.Default())
	assert.NotEqual(t, nil, err)
}

func TestNew_UnknownNotifier(t *testing.T) {
	cfg := testConfig()
	cfg.Notifier = "teams"

	_, err := New(context.Background(), cfg, slog.Default())
	assert.NotEqual(t, nil, err)
}
