package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"transport", Transport("op", errors.New("refused")), KindTransport},
		{"status", TransportStatus("op", 500, "boom"), KindTransport},
		{"invalid", InvalidResponse("op", errors.New("no candidates")), KindInvalidResponse},
		{"timeout", Timeout("op", context.DeadlineExceeded), KindTimeout},
		{"not found", NotFound("op", 7), KindNotFound},
		{"wrapped", fmt.Errorf("outer: %w", InvalidResponse("op", nil)), KindInvalidResponse},
		{"bare deadline", context.DeadlineExceeded, KindTimeout},
		{"plain", errors.New("x"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestFromCall_Deadline(t *testing.T) {
	err := FromCall("gemini generate", fmt.Errorf("do: %w", context.DeadlineExceeded))
	assert.Equal(t, KindTimeout, err.Kind)
}

func TestFromCall_StripsURL(t *testing.T) {
	raw := &url.Error{
		Op:  "Post",
		URL: "https://example.com/v1/models/m:generateContent?key=secret-key",
		Err: errors.New("connection refused"),
	}

	err := FromCall("gemini generate", raw)

	assert.Equal(t, KindTransport, err.Kind)
	assert.Equal(t, false, strings.Contains(err.Error(), "secret-key"))
	assert.Equal(t, true, strings.Contains(err.Error(), "connection refused"))
}

func TestErrorMessage(t *testing.T) {
	err := TransportStatus("slack webhook", 404, "no_service")
	assert.Equal(t, "slack webhook: status 404: no_service", err.Error())
	assert.Equal(t, "op: id 3 not found", NotFound("op", 3).Error())
}
