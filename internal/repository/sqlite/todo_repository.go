package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-service/internal/domain"
	"todo-service/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	priority INTEGER NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT 0,
	owner_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(owner_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_todos_owner_id ON todos(owner_id);
`

const todoColumns = `id, title, description, priority, completed, owner_id, created_at, updated_at`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (title, description, priority, completed, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		todo.Title,
		todo.Description,
		todo.Priority,
		todo.Completed,
		todo.OwnerID,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	return scanTodo(row)
}

func (r *TodoRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanTodo(row)
}

func (r *TodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	return r.query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id ASC`)
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	return r.query(ctx, `SELECT `+todoColumns+` FROM todos WHERE owner_id = ? ORDER BY id ASC`, ownerID)
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	todo.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET title = ?, description = ?, priority = ?, completed = ?, updated_at = ?
WHERE id = ? AND owner_id = ?`,
		todo.Title,
		todo.Description,
		todo.Priority,
		todo.Completed,
		todo.UpdatedAt,
		todo.ID,
		todo.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return ensureAffected(res, "todo")
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return ensureAffected(res, "todo")
}

func (r *TodoRepository) query(ctx context.Context, query string, args ...any) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var todo domain.Todo
	if err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Priority,
		&todo.Completed,
		&todo.OwnerID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &todo, nil
}
