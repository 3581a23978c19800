package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "DATABASE_DRIVER", "DATABASE_DSN", "COHERE_API_KEY",
		"SLACK_WEBHOOK_URL", "RATE_LIMIT_PER_MINUTE", "REDIS_ADDR", "LOG_LEVEL", "LOG_FORMAT",
		"GENERATE_TIMEOUT_SECONDS", "NOTIFY_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppURL != "127.0.0.1:5000" {
		t.Errorf("expected default app url, got %q", cfg.AppURL)
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.SlackWebhookURL != "" {
		t.Errorf("expected empty webhook url, got %q", cfg.SlackWebhookURL)
	}
	if cfg.NotifyTimeout() != 10*time.Second {
		t.Errorf("expected 10s notify timeout, got %s", cfg.NotifyTimeout())
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_DSN", "postgres://localhost/todos")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/x")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !strings.HasSuffix(cfg.AppURL, ":9000") {
		t.Errorf("expected port override, got %q", cfg.AppURL)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.SlackWebhookURL == "" {
		t.Error("expected webhook url to be set")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "abc")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid configuration")
	}

	msg := err.Error()
	for _, want := range []string{"DATABASE_DRIVER", "RATE_LIMIT_PER_MINUTE", "NOTIFY_TIMEOUT_SECONDS"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %s, got %q", want, msg)
		}
	}
}

func TestNewDatabaseClient_SQLite(t *testing.T) {
	db, err := NewDatabaseClient(DriverSQLite, ":memory:", slog.LevelError)
	if err != nil {
		t.Fatalf("NewDatabaseClient() error = %v", err)
	}

	if !db.Migrator().HasTable("todos") {
		t.Error("expected todos table to be migrated")
	}
}

func TestNewDatabaseClient_UnknownDriver(t *testing.T) {
	if _, err := NewDatabaseClient("oracle", "dsn", slog.LevelError); err == nil {
		t.Error("expected error for unknown driver")
	}
}
