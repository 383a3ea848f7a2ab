package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_Disabled(t *testing.T) {
	env := newTestEnv(t)

	svc := NewExportService(env.todos, nil, "bucket", "exports")
	_, err := svc.ExportTodos(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)

	svc = NewExportService(env.todos, newMemoryStore(), "", "exports")
	_, err = svc.ListExports(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestExportService_ExportTodos(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw", "user")
	ctx := context.Background()
	_, err := env.todoSvc.Create(ctx, alice.ID, TodoInput{Title: "milk", Description: "buy", Priority: 2})
	require.NoError(t, err)

	store := newMemoryStore()
	svc := NewExportService(env.todos, store, "backups", "/exports/")

	location, err := svc.ExportTodos(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, "s3://backups/exports/todos-"), location)
	assert.True(t, strings.HasSuffix(location, ".json"), location)

	key := strings.TrimPrefix(location, "s3://backups/")
	require.Contains(t, store.objects, key)
	assert.Equal(t, "application/json", store.types[key])

	var records []map[string]any
	require.NoError(t, json.Unmarshal(store.objects[key], &records))
	require.Len(t, records, 1)
	assert.Equal(t, "milk", records[0]["title"])
	assert.EqualValues(t, alice.ID, records[0]["owner_id"])

	exports, err := svc.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, key, exports[0].Key)
	assert.Positive(t, exports[0].Size)
}
