package llm

import (
	"context"
	"errors"
	"strings"
	"time"
	"todosummary/internal/apperr"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = "claude-haiku-4-5"

type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type AnthropicClient struct {
	client  *anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client:  &client,
		model:   anthropic.Model(cfg.Model),
		timeout: cfg.Timeout,
	}
}

func (c *AnthropicClient) Name() string {
	return ProviderAnthropic
}

func (c *AnthropicClient) Summarize(ctx context.Context, prompt string) (string, error) {
	const op = "anthropic messages"

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", apperr.TransportStatus(op, apiErr.StatusCode, "")
		}
		return "", apperr.FromCall(op, err)
	}

	if len(resp.Content) == 0 {
		return "", apperr.InvalidResponse(op, errors.New("no content blocks"))
	}

	text := strings.TrimSpace(resp.Content[0].Text)
	if text == "" {
		return "", apperr.InvalidResponse(op, errors.New("empty text block"))
	}

	return text, nil
}
