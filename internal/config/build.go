package config

import (
	"fmt"
	"todosummary/pkg/llm"
	"todosummary/pkg/notify"
)

func (c *Config) NewSummarizer() (llm.Summarizer, error) {
	switch c.SummarizerProvider {
	case llm.ProviderGemini:
		return llm.NewGeminiClient(c.Gemini), nil
	case llm.ProviderOpenAI:
		return llm.NewOpenAIClient(c.OpenAI), nil
	case llm.ProviderAnthropic:
		return llm.NewAnthropicClient(c.Anthropic), nil
	}
	return nil, fmt.Errorf("unknown summarizer provider %q", c.SummarizerProvider)
}

func (c *Config) NewNotifier() (notify.Notifier, error) {
	switch c.Notifier {
	case notify.KindSlack:
		return notify.NewWebhookClient(c.SlackWebhookURL, c.RequestTimeout), nil
	case notify.KindDiscord:
		return notify.NewDiscordClient(c.DiscordWebhookURL, c.RequestTimeout)
	}
	return nil, fmt.Errorf("unknown notifier %q", c.Notifier)
}
