package cmd

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	config "todo-digest.com/todo-digest/internal/configs"
	"todo-digest.com/todo-digest/internal/generation"
	"todo-digest.com/todo-digest/internal/notification"
	repository "todo-digest.com/todo-digest/internal/repositories"
	"todo-digest.com/todo-digest/internal/services"
)

type app struct {
	db        *gorm.DB
	todos     *services.TodoService
	summaries *services.SummaryService
}

func newApp(cfg config.Config, logger *slog.Logger) (*app, error) {
	db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	todoService := services.NewTodoService(repository.NewTodoRepository(db), logger)

	generator := generation.NewCohereGenerator(
		cfg.CohereAPIKey,
		generation.WithBaseURL(cfg.CohereBaseURL),
		generation.WithModel(cfg.CohereModel),
	)
	if cfg.CohereAPIKey == "" {
		logger.Warn("COHERE_API_KEY not set, summaries will fail")
	}

	var notifier notification.Notifier
	if cfg.SlackWebhookURL != "" {
		notifier = notification.NewSlackNotifier(cfg.SlackWebhookURL, nil)
	} else {
		logger.Info("SLACK_WEBHOOK_URL not set, summary notifications disabled")
	}

	summaryService := services.NewSummaryService(todoService, generator, notifier, services.SummaryConfig{
		GenerateTimeout: cfg.GenerateTimeout(),
		NotifyTimeout:   cfg.NotifyTimeout(),
	}, logger)

	return &app{
		db:        db,
		todos:     todoService,
		summaries: summaryService,
	}, nil
}

func (a *app) close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	return sqlDB.Close()
}
