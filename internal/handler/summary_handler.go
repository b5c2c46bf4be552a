package handler

import (
	"context"
	"log/slog"
	"net/http"
	"todosummary/internal/apperr"
	"todosummary/internal/model"
	"todosummary/internal/summary"

	"github.com/gin-gonic/gin"
)

type SummaryRunner interface {
	Run(ctx context.Context) summary.Outcome
}

type RunStore interface {
	GetRuns(ctx context.Context, limit int) ([]model.SummaryRun, error)
	GetFailedRuns(ctx context.Context, limit int) ([]model.SummaryRun, error)
}

type SummaryHandler struct {
	runner SummaryRunner
	runs   RunStore
}

// NewSummaryHandler builds the handler. runs may be nil when no run log is
// configured; GetSummaries then returns an empty history.
func NewSummaryHandler(runner SummaryRunner, runs RunStore) *SummaryHandler {
	return &SummaryHandler{runner: runner, runs: runs}
}

// Summarize runs the pipeline once and answers with a plain-text outcome.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	outcome := h.runner.Run(c.Request.Context())

	if outcome.Failed() {
		c.String(statusForError(outcome.Err), "Error: "+outcome.Message)
		return
	}

	c.String(http.StatusOK, outcome.Message)
}

func (h *SummaryHandler) GetSummaries(c *gin.Context) {
	h.listRuns(c, func(ctx context.Context, limit int) ([]model.SummaryRun, error) {
		return h.runs.GetRuns(ctx, limit)
	})
}

func (h *SummaryHandler) GetFailedSummaries(c *gin.Context) {
	h.listRuns(c, func(ctx context.Context, limit int) ([]model.SummaryRun, error) {
		return h.runs.GetFailedRuns(ctx, limit)
	})
}

func (h *SummaryHandler) listRuns(c *gin.Context, get func(ctx context.Context, limit int) ([]model.SummaryRun, error)) {
	limit := getQueryLimit(c)

	if h.runs == nil {
		c.JSON(http.StatusOK, RunsResponse{Runs: []RunResponse{}, Limit: limit})
		return
	}

	runs, err := get(c.Request.Context(), limit)
	if err != nil {
		slog.Error("error fetching summary runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Run log error"})
		return
	}

	res := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		res = append(res, toRunResponse(r))
	}

	c.JSON(http.StatusOK, RunsResponse{Runs: res, Limit: limit})
}

func statusForError(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	case apperr.KindTransport, apperr.KindInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
