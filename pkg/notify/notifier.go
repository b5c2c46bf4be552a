package notify

import (
	"context"
	"time"
)

const (
	KindSlack   = "slack"
	KindDiscord = "discord"
)

const messageHeader = "*📋 Todo Summary:*\n"

// Notifier delivers a summary to a chat channel. One attempt, no retries.
type Notifier interface {
	Notify(ctx context.Context, summary string) error
	Name() string
}

// FormatMessage wraps a summary in the chat envelope.
func FormatMessage(summary string) string {
	return messageHeader + summary
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
