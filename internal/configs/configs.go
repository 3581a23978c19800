package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	CohereAPIKey           string
	CohereBaseURL          string
	CohereModel            string
	SlackWebhookURL        string
	GenerateTimeoutSeconds int
	NotifyTimeoutSeconds   int
	RateLimit              int
	RedisAddr              string
	RedisRateLimitPrefix   string
	ShutdownTimeoutSeconds int
	LogLevel               slog.Level
	LogFormat              string
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "5000")

	var errs []error

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabaseDSN:            getEnv("DATABASE_DSN", "todos.db"),
		CohereAPIKey:           os.Getenv("COHERE_API_KEY"),
		CohereBaseURL:          getEnv("COHERE_BASE_URL", "https://api.cohere.ai"),
		CohereModel:            getEnv("COHERE_MODEL", "command"),
		SlackWebhookURL:        os.Getenv("SLACK_WEBHOOK_URL"),
		GenerateTimeoutSeconds: getEnvAsInt("GENERATE_TIMEOUT_SECONDS", 30, &errs),
		NotifyTimeoutSeconds:   getEnvAsInt("NOTIFY_TIMEOUT_SECONDS", 10, &errs),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60, &errs),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisRateLimitPrefix:   getEnv("REDIS_RATE_LIMIT_PREFIX", "todo_rate_limit"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
		LogFormat:              strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}

	errs = append(errs, validate(cfg)...)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) GenerateTimeout() time.Duration {
	return time.Duration(c.GenerateTimeoutSeconds) * time.Second
}

func (c Config) NotifyTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func validate(cfg Config) []error {
	var errs []error
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres))
	}
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.GenerateTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("GENERATE_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.NotifyTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("NOTIFY_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, errors.New(`LOG_FORMAT must be "text" or "json"`))
	}
	return errs
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}
