package llm

import (
	"context"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Summarizer turns a prompt into generated text. Implementations make exactly
// one outbound call per Summarize and never retry.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
	Name() string
}

const maxErrorBodyChars = 200

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
