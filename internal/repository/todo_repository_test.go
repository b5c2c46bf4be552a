package repository

import (
	"context"
	"testing"
	"todosummary/db"
	"todosummary/internal/apperr"
	"todosummary/internal/model"

	"github.com/go-playground/assert/v2"
)

func newTestRepo(t *testing.T) *TodoRepository {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.EnsureSchema(context.Background(), conn, db.DriverSQLite); err != nil {
		t.Fatalf("schema: %v", err)
	}

	return NewTodoRepository(conn)
}

func TestTodoRepository_AddAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, model.Todo{Title: "Buy milk", Description: "2%"})
	assert.Equal(t, nil, err)
	second, err := repo.Add(ctx, model.Todo{Title: "Call Bob"})
	assert.Equal(t, nil, err)

	assert.NotEqual(t, first.ID, second.ID)

	todos, err := repo.ListAll(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(todos))
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.Equal(t, "2%", todos[0].Description)
	assert.Equal(t, "", todos[1].Description)
	assert.Equal(t, false, todos[1].Completed)
}

func TestTodoRepository_ListPending(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.Add(ctx, model.Todo{Title: "a"})
	repo.Add(ctx, model.Todo{Title: "b", Completed: true})
	repo.Add(ctx, model.Todo{Title: "c"})

	pending, err := repo.ListPending(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(pending))
	assert.Equal(t, "a", pending[0].Title)
	assert.Equal(t, "c", pending[1].Title)
}

func TestTodoRepository_ListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	pending, err := repo.ListPending(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(pending))
	assert.Equal(t, true, pending != nil)
}

func TestTodoRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, _ := repo.Add(ctx, model.Todo{Title: "draft"})

	updated, err := repo.Update(ctx, created.ID, model.Todo{Title: "final", Description: "done soon", Completed: true})
	assert.Equal(t, nil, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "final", updated.Title)

	got, err := repo.GetByID(ctx, created.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "done soon", got.Description)
	assert.Equal(t, true, got.Completed)

	pending, _ := repo.ListPending(ctx)
	assert.Equal(t, 0, len(pending))
}

func TestTodoRepository_UpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(context.Background(), 42, model.Todo{Title: "x"})
	assert.Equal(t, true, apperr.Is(err, apperr.KindNotFound))
}

func TestTodoRepository_GetNotFound(t *testing.T) {
	repo := newTestRepo(t)

	todo, err := repo.GetByID(context.Background(), 42)
	assert.Equal(t, true, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, true, todo == nil)
}

func TestTodoRepository_DeleteIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, _ := repo.Add(ctx, model.Todo{Title: "gone"})

	assert.Equal(t, nil, repo.Delete(ctx, created.ID))
	assert.Equal(t, nil, repo.Delete(ctx, created.ID))
	assert.Equal(t, nil, repo.Delete(ctx, 999))

	todos, _ := repo.ListAll(ctx)
	assert.Equal(t, 0, len(todos))
}
