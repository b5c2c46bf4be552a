package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"todosummary/internal/apperr"
	"todosummary/internal/model"

	"github.com/gin-gonic/gin"
)

type TodoStore interface {
	ListAll(ctx context.Context) ([]model.Todo, error)
	ListPending(ctx context.Context) ([]model.Todo, error)
	GetByID(ctx context.Context, id int64) (*model.Todo, error)
	Add(ctx context.Context, todo model.Todo) (*model.Todo, error)
	Update(ctx context.Context, id int64, todo model.Todo) (*model.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type TodoHandler struct {
	repository TodoStore
}

func NewTodoHandler(repository TodoStore) *TodoHandler {
	return &TodoHandler{repository: repository}
}

func (h *TodoHandler) GetTodos(c *gin.Context) {
	todos, err := h.repository.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("error fetching todos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toTodoResponses(todos))
}

func (h *TodoHandler) GetPendingTodos(c *gin.Context) {
	todos, err := h.repository.ListPending(c.Request.Context())
	if err != nil {
		slog.Error("error fetching pending todos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toTodoResponses(todos))
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, ok := getParamID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return
	}

	todo, err := h.repository.GetByID(c.Request.Context(), id)
	if apperr.Is(err, apperr.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	if err != nil {
		slog.Error("error fetching todo", "error", err, "todo_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toTodoResponse(*todo))
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	req, ok := bindTodoRequest(c)
	if !ok {
		return
	}

	todo, err := h.repository.Add(c.Request.Context(), req.toModel())
	if err != nil {
		slog.Error("error creating todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toTodoResponse(*todo))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := getParamID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return
	}

	req, ok := bindTodoRequest(c)
	if !ok {
		return
	}

	todo, err := h.repository.Update(c.Request.Context(), id, req.toModel())
	if apperr.Is(err, apperr.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	if err != nil {
		slog.Error("error updating todo", "error", err, "todo_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toTodoResponse(*todo))
}

// DeleteTodo answers 204 for unknown ids too.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := getParamID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return
	}

	if err := h.repository.Delete(c.Request.Context(), id); err != nil {
		slog.Error("error deleting todo", "error", err, "todo_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func bindTodoRequest(c *gin.Context) (TodoRequest, bool) {
	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid todo payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo payload"})
		return req, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return req, false
	}

	return req, true
}
