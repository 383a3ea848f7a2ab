package service

import (
	"context"
	"strings"

	"todo-service/internal/domain"
	"todo-service/internal/repository"
)

// TodoInput is the writable part of a todo.
type TodoInput struct {
	Title       string `validate:"required,min=1,max=100"`
	Description string `validate:"required,min=1,max=100"`
	Priority    int    `validate:"gte=1,lte=5"`
	Completed   bool
}

// TodoService coordinates todo operations. Owner-scoped methods report a
// todo belonging to someone else as domain.ErrNotFound.
type TodoService interface {
	ListForOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	Create(ctx context.Context, ownerID int64, in TodoInput) (*domain.Todo, error)
	UpdateForOwner(ctx context.Context, id, ownerID int64, in TodoInput) (*domain.Todo, error)
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
	ListAll(ctx context.Context) ([]domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *todoService) GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	return s.todos.GetForOwner(ctx, id, ownerID)
}

func (s *todoService) Create(ctx context.Context, ownerID int64, in TodoInput) (*domain.Todo, error) {
	in = normalizeTodo(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Completed:   in.Completed,
		OwnerID:     ownerID,
	}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) UpdateForOwner(ctx context.Context, id, ownerID int64, in TodoInput) (*domain.Todo, error) {
	in = normalizeTodo(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	todo, err := s.todos.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Priority = in.Priority
	todo.Completed = in.Completed
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	todo, err := s.todos.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	return s.todos.Delete(ctx, todo.ID)
}

func (s *todoService) ListAll(ctx context.Context) ([]domain.Todo, error) {
	return s.todos.List(ctx)
}

func (s *todoService) Delete(ctx context.Context, id int64) error {
	return s.todos.Delete(ctx, id)
}

func normalizeTodo(in TodoInput) TodoInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
