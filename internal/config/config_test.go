package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, "data/todos.db", cfg.Database.Path)
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.False(t, cfg.Auth.LegacyStatusCodes)
	assert.Equal(t, "todo-exports", cfg.Storage.KeyPrefix)
	assert.Error(t, cfg.Validate(), "secret is required")
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODO_AUTH_JWTSECRET", "from-env")
	t.Setenv("TODO_AUTH_TOKENTTLMINUTES", "5")
	t.Setenv("TODO_AUTH_LEGACYSTATUSCODES", "true")
	t.Setenv("TODO_STORAGE_BUCKET", "exports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL())
	assert.True(t, cfg.Auth.LegacyStatusCodes)
	assert.Equal(t, "exports", cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
server:
  addr: 127.0.0.1:9000
log:
  level: debug
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TODO_AUTH_JWTSECRET=dotenv-secret\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TODO_AUTH_JWTSECRET") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "dotenv-secret", cfg.Auth.JWTSecret)
}

func TestValidate_TTL(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "s"
	cfg.Auth.TokenTTLMinutes = 0
	assert.Error(t, cfg.Validate())
}
