package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"todosummary/internal/apperr"
	"todosummary/internal/model"
)

type TodoRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todo
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	return scanTodos(rows)
}

// ListPending returns items with completed = false in insertion order.
func (r *TodoRepository) ListPending(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todo
		WHERE completed = $1
		ORDER BY id ASC
	`, false)
	if err != nil {
		return nil, err
	}
	return scanTodos(rows)
}

func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*model.Todo, error) {
	var t model.Todo
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todo
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("get todo", id)
	}

	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TodoRepository) Add(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	now := r.now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO todo(title, description, completed, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, todo.Title, todo.Description, todo.Completed, todo.CreatedAt, todo.UpdatedAt).Scan(&todo.ID)
	if err != nil {
		return nil, err
	}

	return &todo, nil
}

// Update replaces title, description and completed of an existing item.
func (r *TodoRepository) Update(ctx context.Context, id int64, todo model.Todo) (*model.Todo, error) {
	todo.ID = id
	todo.UpdatedAt = r.now()

	err := r.db.QueryRowContext(ctx, `
		UPDATE todo
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5
		RETURNING created_at
	`, todo.Title, todo.Description, todo.Completed, todo.UpdatedAt, id).Scan(&todo.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("update todo", id)
	}

	if err != nil {
		return nil, err
	}

	return &todo, nil
}

// Delete removes an item. Deleting an unknown id is not an error.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todo WHERE id = $1`, id)
	return err
}

func (r *TodoRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanTodos(rows *sql.Rows) ([]model.Todo, error) {
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}
