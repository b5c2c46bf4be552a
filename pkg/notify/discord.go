package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"todosummary/internal/apperr"

	"github.com/bwmarrin/discordgo"
)

// DiscordClient executes a Discord webhook. No bot token is needed, the
// webhook id and token come from the webhook URL.
type DiscordClient struct {
	session   *discordgo.Session
	webhookID string
	token     string
	timeout   time.Duration
}

func NewDiscordClient(webhookURL string, timeout time.Duration) (*DiscordClient, error) {
	id, token, err := parseDiscordWebhook(webhookURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.MaxRestRetries = 0
	session.ShouldRetryOnRateLimit = false

	return &DiscordClient{
		session:   session,
		webhookID: id,
		token:     token,
		timeout:   timeout,
	}, nil
}

func (c *DiscordClient) Name() string {
	return KindDiscord
}

func (c *DiscordClient) Notify(ctx context.Context, summary string) error {
	const op = "discord webhook"

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.session.WebhookExecute(c.webhookID, c.token, true, &discordgo.WebhookParams{
		Content: FormatMessage(summary),
	}, discordgo.WithContext(ctx))
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil {
			return apperr.TransportStatus(op, restErr.Response.StatusCode, "")
		}
		// RateLimitError's message carries the webhook URL and token.
		var rateErr *discordgo.RateLimitError
		if errors.As(err, &rateErr) {
			return apperr.TransportStatus(op, http.StatusTooManyRequests, "rate limited")
		}
		return apperr.FromCall(op, err)
	}

	return nil
}

// parseDiscordWebhook extracts id and token from
// https://discord.com/api/webhooks/{id}/{token}.
func parseDiscordWebhook(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", errors.New("invalid discord webhook url")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}

	return "", "", errors.New("invalid discord webhook url: expected /api/webhooks/{id}/{token}")
}
