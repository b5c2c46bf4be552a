package handler

import (
	"time"
	"todosummary/internal/model"
)

type TodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type RunResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	ErrorKind  string `json:"error_kind,omitempty"`
	ItemCount  int    `json:"item_count"`
	Summarizer string `json:"summarizer"`
	Notifier   string `json:"notifier"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

type RunsResponse struct {
	Runs  []RunResponse `json:"runs"`
	Limit int           `json:"limit"`
}

func toTodoResponse(t model.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTodoResponses(todos []model.Todo) []TodoResponse {
	res := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		res = append(res, toTodoResponse(t))
	}
	return res
}

func toRunResponse(r model.SummaryRun) RunResponse {
	return RunResponse{
		ID:         r.ID,
		Status:     r.Status,
		Message:    r.Message,
		ErrorKind:  r.ErrorKind,
		ItemCount:  r.ItemCount,
		Summarizer: r.Summarizer,
		Notifier:   r.Notifier,
		StartedAt:  r.StartedAt.Format(time.RFC3339),
		FinishedAt: r.FinishedAt.Format(time.RFC3339),
	}
}

func (r TodoRequest) toModel() model.Todo {
	return model.Todo{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}
