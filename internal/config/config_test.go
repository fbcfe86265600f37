package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-leave/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("success defaults with env override", func(t *testing.T) {
		t.Setenv("LEAVE_AUTH_JWT_SECRET", "0123456789abcdef-secret")
		t.Setenv("LEAVE_SERVER_PORT", "8081")
		t.Setenv("LEAVE_NOTIFICATION_WEBHOOK_URL", "https://chat.example.com/hook")

		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !assert.NoError(t, err) {
			return
		}

		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, "https://chat.example.com/hook", cfg.Notification.WebhookURL)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
	})

	t.Run("success file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server:\n  port: 9000\nauth:\n  jwt_secret: file-secret-0123456789\nlog:\n  level: debug\n"
		assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := config.Load(path)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("negative missing secret", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		assert.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600))

		_, err := config.Load(path)
		assert.ErrorContains(t, err, "jwt_secret")
	})
}

func TestValidate(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: 70000},
		Auth:   config.AuthConfig{JWTSecret: "0123456789abcdef"},
	}
	assert.ErrorContains(t, cfg.Validate(), "server.port")

	cfg.Server.Port = 3000
	cfg.Auth.JWTSecret = "short"
	assert.ErrorContains(t, cfg.Validate(), "at least 16")
}

func TestDatabaseConfig_URL(t *testing.T) {
	db := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "leave", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/leave?sslmode=disable", db.URL())
}
