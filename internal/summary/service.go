package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"todosummary/internal/apperr"
	"todosummary/internal/model"
	"todosummary/pkg/llm"
	"todosummary/pkg/notify"

	"github.com/google/uuid"
)

const (
	MessageNoPending = "No pending todos to summarize."
	MessagePosted    = "Summary posted successfully."
)

type state string

const (
	stateFetchingItems  state = "fetching_items"
	stateNoPendingItems state = "no_pending_items"
	stateBuildingPrompt state = "building_prompt"
	stateCallingSummary state = "calling_summarizer"
	stateDispatching    state = "dispatching_notification"
	stateSucceeded      state = "succeeded"
	stateFailed         state = "failed"
)

type TodoStore interface {
	ListPending(ctx context.Context) ([]model.Todo, error)
}

type RunRecorder interface {
	SaveRun(ctx context.Context, run model.SummaryRun) error
}

// Outcome is the single user-facing result of one run. Err is set only when
// Status is model.RunStatusFailed.
type Outcome struct {
	Status    string
	Message   string
	Summary   string
	ItemCount int
	Err       error
}

func (o Outcome) Failed() bool {
	return o.Status == model.RunStatusFailed
}

// Service runs fetch -> prompt -> summarize -> notify. It holds no per-run
// state, so concurrent Run calls do not interact.
type Service struct {
	store      TodoStore
	summarizer llm.Summarizer
	notifier   notify.Notifier
	runs       RunRecorder
	log        *slog.Logger
}

// NewService wires the pipeline. runs may be nil when no run log is kept.
func NewService(store TodoStore, summarizer llm.Summarizer, notifier notify.Notifier,
	runs RunRecorder, log *slog.Logger) *Service {

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:      store,
		summarizer: summarizer,
		notifier:   notifier,
		runs:       runs,
		log:        log.With("component", "summary"),
	}
}

func (s *Service) Run(ctx context.Context) Outcome {
	run := model.SummaryRun{
		ID:         uuid.NewString(),
		Summarizer: s.summarizer.Name(),
		Notifier:   s.notifier.Name(),
		StartedAt:  time.Now().UTC(),
	}
	log := s.log.With("run_id", run.ID)

	outcome := s.run(ctx, log)

	if outcome.Failed() {
		log.Error("summary run failed", "error", outcome.Err, "kind", apperr.KindOf(outcome.Err))
	} else {
		log.Info("summary run finished", "status", outcome.Status, "item_count", outcome.ItemCount)
	}

	s.record(ctx, log, run, outcome)

	return outcome
}

func (s *Service) run(ctx context.Context, log *slog.Logger) Outcome {
	transition(log, stateFetchingItems)
	todos, err := s.store.ListPending(ctx)
	if err != nil {
		return failed(log, 0, fmt.Errorf("list pending todos: %w", err))
	}

	if len(todos) == 0 {
		transition(log, stateNoPendingItems)
		return Outcome{Status: model.RunStatusNoPending, Message: MessageNoPending}
	}

	// private copy so later store mutations cannot leak into this run
	snapshot := make([]model.Todo, len(todos))
	copy(snapshot, todos)

	transition(log, stateBuildingPrompt)
	prompt := llm.BuildPrompt(snapshot)

	transition(log, stateCallingSummary)
	summary, err := s.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return failed(log, len(snapshot), err)
	}

	transition(log, stateDispatching)
	if err := s.notifier.Notify(ctx, summary); err != nil {
		return failed(log, len(snapshot), err)
	}

	transition(log, stateSucceeded)
	return Outcome{
		Status:    model.RunStatusPosted,
		Message:   MessagePosted,
		Summary:   summary,
		ItemCount: len(snapshot),
	}
}

func (s *Service) record(ctx context.Context, log *slog.Logger, run model.SummaryRun, outcome Outcome) {
	if s.runs == nil {
		return
	}

	run.Status = outcome.Status
	run.Message = outcome.Message
	run.ItemCount = outcome.ItemCount
	run.FinishedAt = time.Now().UTC()
	if outcome.Err != nil {
		run.ErrorKind = string(apperr.KindOf(outcome.Err))
	}

	if err := s.runs.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		log.Warn("failed to record summary run", "error", err)
	}
}

func failed(log *slog.Logger, itemCount int, err error) Outcome {
	transition(log, stateFailed)
	return Outcome{
		Status:    model.RunStatusFailed,
		Message:   err.Error(),
		ItemCount: itemCount,
		Err:       err,
	}
}

func transition(log *slog.Logger, st state) {
	log.Debug("summary run transition", "state", st)
}
