package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"todosummary/internal/apperr"
)

const maxErrorBodyBytes = 200

// WebhookClient posts {"text": ...} to a Slack-compatible incoming webhook.
type WebhookClient struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

func NewWebhookClient(url string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		url:        url,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (c *WebhookClient) Name() string {
	return KindSlack
}

type webhookPayload struct {
	Text string `json:"text"`
}

func (c *WebhookClient) Notify(ctx context.Context, summary string) error {
	const op = "slack webhook"

	body, err := json.Marshal(webhookPayload{Text: FormatMessage(summary)})
	if err != nil {
		return fmt.Errorf("%s: encode payload: %w", op, err)
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return apperr.Transport(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.FromCall(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return apperr.TransportStatus(op, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}
