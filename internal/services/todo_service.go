package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "todo-digest.com/todo-digest/internal/errors"
	repository "todo-digest.com/todo-digest/internal/repositories"
	model "todo-digest.com/todo-digest/pkg/models"
)

// toggleMaxAttempts bounds how often Toggle re-reads a todo after losing a
// compare-and-swap race.
const toggleMaxAttempts = 5

type TodoService struct {
	repo   *repository.TodoRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewTodoService(repo *repository.TodoRepository, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TodoService) Create(ctx context.Context, text string) (*model.Todo, error) {
	if isBlank(text) {
		return nil, apperrors.ErrTextRequired
	}

	todo, err := s.repo.Create(ctx, text)
	if err != nil {
		return nil, apperrors.NewStoreError("insert todo", err)
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("list todos", err)
	}
	return todos, nil
}

func (s *TodoService) Update(ctx context.Context, id uint, text string) (*model.Todo, error) {
	if isBlank(text) {
		return nil, apperrors.ErrTextRequired
	}

	todo, err := s.repo.UpdateText(ctx, id, text)
	if err != nil {
		return nil, mapRepositoryError("update todo", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError("delete todo", err)
	}
	return nil
}

// Toggle inverts the completion state of a todo. completed and completed_at
// are written by a single conditional update keyed on the version that was
// read, so concurrent toggles never lose a flip; the loser re-reads and tries
// again.
func (s *TodoService) Toggle(ctx context.Context, id uint) (*model.Todo, error) {
	for attempt := 1; attempt <= toggleMaxAttempts; attempt++ {
		todo, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapRepositoryError("find todo", err)
		}

		completed, completedAt := todo.Toggled(s.now())

		err = s.repo.SetCompletion(ctx, todo, completed, completedAt)
		if err == nil {
			return todo, nil
		}
		if !errors.Is(err, repository.ErrOptimisticLock) {
			return nil, apperrors.NewStoreError("toggle todo", err)
		}

		s.logger.Debug("toggle lost a concurrent update, retrying",
			slog.Uint64("todo_id", uint64(id)),
			slog.Int("attempt", attempt),
		)
	}

	s.logger.Warn("toggle gave up after repeated conflicts",
		slog.Uint64("todo_id", uint64(id)),
		slog.Int("attempts", toggleMaxAttempts),
	)
	return nil, apperrors.ErrOptimisticLock
}

// ListTexts satisfies TodoSource for the summary pipeline.
func (s *TodoService) ListTexts(ctx context.Context) ([]string, error) {
	texts, err := s.repo.ListTexts(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("list todo texts", err)
	}
	return texts, nil
}

func (s *TodoService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return apperrors.NewStoreError("ping", err)
	}
	return nil
}

func mapRepositoryError(op string, err error) error {
	if errors.Is(err, repository.ErrTodoNotFound) {
		return apperrors.ErrTodoNotFound
	}
	return apperrors.NewStoreError(op, err)
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
