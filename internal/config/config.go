package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
		Mode string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret       string
		Algorithm       string
		TokenTTLMinutes int
		BcryptCost      int
		// AdminSecret, when set, is required to register an admin account.
		AdminSecret string
		// LegacyStatusCodes answers role failures with 401 instead of 403.
		LegacyStatusCodes bool
	}
	Log struct {
		Level string
		File  string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// TokenTTL returns the configured token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth token ttl must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	return nil
}

// Load reads configuration from environment variables and optional config files.
// Variables use the TODO_ prefix, e.g. TODO_AUTH_JWTSECRET.
func Load() (Config, error) {
	// .env never overrides variables that are already set
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/todos.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.tokenttlminutes", 30)
	v.SetDefault("auth.bcryptcost", 0)
	v.SetDefault("auth.adminsecret", "")
	v.SetDefault("auth.legacystatuscodes", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "todo-exports")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
