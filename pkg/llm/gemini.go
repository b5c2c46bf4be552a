package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"todosummary/internal/apperr"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1"
	DefaultGeminiModel   = "gemini-1.5-flash"

	maxResponseBytes = 1 << 20
)

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &GeminiClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
}

func (c *GeminiClient) Name() string {
	return ProviderGemini
}

func (c *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

func (c *GeminiClient) Summarize(ctx context.Context, prompt string) (string, error) {
	const op = "gemini generate"

	body, err := json.Marshal(generateContentRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: &prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", op, err)
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", apperr.Transport(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.FromCall(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperr.FromCall(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.TransportStatus(op, resp.StatusCode, truncate(strings.TrimSpace(string(data)), maxErrorBodyChars))
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", apperr.InvalidResponse(op, fmt.Errorf("decode body: %w", err))
	}

	text, err := parsed.firstText()
	if err != nil {
		return "", apperr.InvalidResponse(op, err)
	}

	return text, nil
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text *string `json:"text,omitempty"`
}

type generateContentResponse struct {
	Candidates     []geminiCandidate     `json:"candidates"`
	PromptFeedback *geminiPromptFeedback `json:"promptFeedback,omitempty"`
}

type geminiCandidate struct {
	Content      *geminiContent `json:"content"`
	FinishReason string         `json:"finishReason,omitempty"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// firstText extracts candidates[0].content.parts[0].text, trimmed.
func (r generateContentResponse) firstText() (string, error) {
	if len(r.Candidates) == 0 {
		if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("no candidates, prompt blocked: %s", r.PromptFeedback.BlockReason)
		}
		return "", errors.New("missing candidates")
	}

	content := r.Candidates[0].Content
	if content == nil {
		return "", errors.New("candidate has no content")
	}

	if len(content.Parts) == 0 {
		return "", errors.New("candidate content has no parts")
	}

	if content.Parts[0].Text == nil {
		return "", errors.New("first part has no text")
	}

	text := strings.TrimSpace(*content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty text in first part")
	}

	return text, nil
}
