package service

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo-service/internal/auth"
	"todo-service/internal/domain"
	"todo-service/internal/repository"
	"todo-service/internal/repository/sqlite"
	"todo-service/internal/storage"
)

type testEnv struct {
	users   repository.UserRepository
	todos   repository.TodoRepository
	userSvc UserService
	todoSvc TodoService
	hasher  auth.PasswordHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	todos := sqlite.NewTodoRepository(db)
	ctx := context.Background()
	require.NoError(t, users.Init(ctx))
	require.NoError(t, todos.Init(ctx))

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	return &testEnv{
		users:   users,
		todos:   todos,
		userSvc: NewUserService(users, hasher, "let-me-admin"),
		todoSvc: NewTodoService(todos),
		hasher:  hasher,
	}
}

func (e *testEnv) register(t *testing.T, username, password, role string) *domain.User {
	t.Helper()
	user, err := e.userSvc.Register(context.Background(), RegisterInput{
		Username:    username,
		Email:       username + "@example.com",
		Password:    password,
		Role:        role,
		AdminSecret: "let-me-admin",
	})
	require.NoError(t, err)
	return user
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStore) PutObject(_ context.Context, body io.Reader, opts storage.PutOptions) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[opts.Key] = buf.Bytes()
	m.types[opts.Key] = opts.ContentType
	return storage.Location(opts.Bucket, opts.Key), nil
}

func (m *memoryStore) ListObjects(_ context.Context, _ string, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}
