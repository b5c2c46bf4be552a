package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"todosummary/internal/apperr"

	"github.com/go-playground/assert/v2"
)

func newGeminiTestServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request, *[]byte) {
	t.Helper()

	var captured http.Request
	var payload []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(context.Background())
		payload, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &captured, &payload
}

func TestGeminiSummarize(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"  Buy milk and call Bob.\n"}],"role":"model"},"finishReason":"STOP"}]}`
	srv, req, payload := newGeminiTestServer(t, http.StatusOK, body)

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL, Model: "gemini-1.5-flash"})

	got, err := client.Summarize(context.Background(), "Summarize this")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Buy milk and call Bob.", got)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", req.URL.Path)
	assert.Equal(t, "test-key", req.URL.Query().Get("key"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	assert.Equal(t, `{"contents":[{"parts":[{"text":"Summarize this"}]}]}`, string(*payload))
}

func TestGeminiSummarize_InvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing candidates", `{"usageMetadata":{}}`},
		{"empty candidates", `{"candidates":[]}`},
		{"null body", `null`},
		{"blocked prompt", `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"no content", `{"candidates":[{"finishReason":"STOP"}]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"part without text", `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`},
		{"blank text", `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`},
		{"candidates wrong type", `{"candidates":"oops"}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newGeminiTestServer(t, http.StatusOK, tt.body)
			client := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL})

			got, err := client.Summarize(context.Background(), "p")

			assert.Equal(t, "", got)
			assert.Equal(t, apperr.KindInvalidResponse, apperr.KindOf(err))
		})
	}
}

func TestGeminiSummarize_HTTPStatus(t *testing.T) {
	srv, _, _ := newGeminiTestServer(t, http.StatusForbidden, `{"error":{"message":"API key not valid"}}`)
	client := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL})

	_, err := client.Summarize(context.Background(), "p")

	assert.Equal(t, apperr.KindTransport, apperr.KindOf(err))
	assert.Equal(t, true, strings.Contains(err.Error(), "403"))
}

func TestGeminiSummarize_ConnectionRefusedHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "super-secret", BaseURL: srv.URL})

	_, err := client.Summarize(context.Background(), "p")

	assert.Equal(t, apperr.KindTransport, apperr.KindOf(err))
	assert.Equal(t, false, strings.Contains(err.Error(), "super-secret"))
}

func TestGeminiSummarize_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := client.Summarize(context.Background(), "p")

	assert.Equal(t, apperr.KindTimeout, apperr.KindOf(err))
}

func TestNewGeminiClient_Defaults(t *testing.T) {
	client := NewGeminiClient(GeminiConfig{APIKey: "k"})

	assert.Equal(t, DefaultGeminiModel, client.model)
	assert.Equal(t, DefaultGeminiBaseURL, client.baseURL)
	assert.Equal(t, ProviderGemini, client.Name())
	assert.Equal(t,
		"https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent?key=k",
		client.endpoint())
}
