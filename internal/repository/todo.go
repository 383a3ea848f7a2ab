package repository

import (
	"context"

	"todo-service/internal/domain"
)

// TodoRepository exposes persistence operations for todos. The *ForOwner
// variants match on both id and owner so a foreign todo looks absent.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	List(ctx context.Context) ([]domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
}
