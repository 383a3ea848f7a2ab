package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-service/internal/domain"
	"todo-service/internal/repository"
	"todo-service/internal/storage"
)

// ErrStorageDisabled is returned when no export bucket is configured.
var ErrStorageDisabled = errors.New("export storage is not configured")

// ExportService writes JSON snapshots of all todos to object storage.
type ExportService interface {
	ExportTodos(ctx context.Context) (string, error)
	ListExports(ctx context.Context) ([]domain.Export, error)
}

type exportedTodo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Completed   bool      `json:"completed"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type exportService struct {
	todos     repository.TodoRepository
	store     storage.Service
	bucket    string
	keyPrefix string
	now       func() time.Time
}

// NewExportService returns a service that fails with ErrStorageDisabled when
// store is nil or bucket is empty.
func NewExportService(todos repository.TodoRepository, store storage.Service, bucket, keyPrefix string) ExportService {
	return &exportService{
		todos:     todos,
		store:     store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       time.Now,
	}
}

func (s *exportService) enabled() bool {
	return s.store != nil && s.bucket != ""
}

func (s *exportService) ExportTodos(ctx context.Context) (string, error) {
	if !s.enabled() {
		return "", ErrStorageDisabled
	}

	todos, err := s.todos.List(ctx)
	if err != nil {
		return "", err
	}

	records := make([]exportedTodo, len(todos))
	for i, t := range todos {
		records[i] = exportedTodo{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			Completed:   t.Completed,
			OwnerID:     t.OwnerID,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	name := fmt.Sprintf("todos-%s-%s.json", s.now().UTC().Format("20060102T150405Z"), uuid.NewString())
	return s.store.PutObject(ctx, bytes.NewReader(payload), storage.PutOptions{
		Bucket:      s.bucket,
		Key:         path.Join(s.keyPrefix, name),
		ContentType: "application/json",
	})
}

func (s *exportService) ListExports(ctx context.Context) ([]domain.Export, error) {
	if !s.enabled() {
		return nil, ErrStorageDisabled
	}

	prefix := s.keyPrefix
	if prefix != "" {
		prefix += "/"
	}
	objects, err := s.store.ListObjects(ctx, s.bucket, prefix)
	if err != nil {
		return nil, err
	}

	exports := make([]domain.Export, len(objects))
	for i, obj := range objects {
		exports[i] = domain.Export{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified}
	}
	return exports, nil
}
