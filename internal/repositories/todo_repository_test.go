package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "todo-digest.com/todo-digest/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Todo{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func TestTodoRepository_CreateAndFind(t *testing.T) {
	repo := NewTodoRepository(setupTestDB(t))
	ctx := context.Background()

	todo, err := repo.Create(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if todo.ID == 0 {
		t.Error("expected generated id")
	}

	found, err := repo.FindByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Task != "Buy milk" {
		t.Errorf("expected task %q, got %q", "Buy milk", found.Task)
	}
	if found.Completed || found.CompletedAt != nil {
		t.Errorf("expected new todo to be incomplete, got completed=%v completed_at=%v", found.Completed, found.CompletedAt)
	}
	if found.Version != 1 {
		t.Errorf("expected version 1, got %d", found.Version)
	}

	if _, err := repo.FindByID(ctx, todo.ID+100); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoRepository_ListOrdering(t *testing.T) {
	repo := NewTodoRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		todos, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if todos == nil || len(todos) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", todos)
		}

		texts, err := repo.ListTexts(ctx)
		if err != nil {
			t.Fatalf("ListTexts() error = %v", err)
		}
		if texts == nil || len(texts) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", texts)
		}
	})

	for _, text := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, text); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("with todos", func(t *testing.T) {
		todos, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(todos) != 3 {
			t.Fatalf("expected 3 todos, got %d", len(todos))
		}
		for i := 1; i < len(todos); i++ {
			if todos[i-1].ID >= todos[i].ID {
				t.Errorf("todos not ordered by id: %d before %d", todos[i-1].ID, todos[i].ID)
			}
		}

		texts, err := repo.ListTexts(ctx)
		if err != nil {
			t.Fatalf("ListTexts() error = %v", err)
		}
		want := []string{"first", "second", "third"}
		for i := range want {
			if texts[i] != want[i] {
				t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
			}
		}
	})
}

func TestTodoRepository_UpdateText(t *testing.T) {
	repo := NewTodoRepository(setupTestDB(t))
	ctx := context.Background()

	todo, _ := repo.Create(ctx, "Original")
	completedAt := time.Now().UTC()
	if err := repo.SetCompletion(ctx, todo, true, &completedAt); err != nil {
		t.Fatalf("SetCompletion() error = %v", err)
	}

	updated, err := repo.UpdateText(ctx, todo.ID, "Edited")
	if err != nil {
		t.Fatalf("UpdateText() error = %v", err)
	}
	if updated.Task != "Edited" {
		t.Errorf("expected task %q, got %q", "Edited", updated.Task)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Error("expected text edit to leave completion untouched")
	}

	if _, err := repo.UpdateText(ctx, todo.ID+100, "x"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoRepository_SetCompletion(t *testing.T) {
	repo := NewTodoRepository(setupTestDB(t))
	ctx := context.Background()

	todo, _ := repo.Create(ctx, "Task")

	t.Run("complete and reopen", func(t *testing.T) {
		completedAt := time.Now().UTC()
		if err := repo.SetCompletion(ctx, todo, true, &completedAt); err != nil {
			t.Fatalf("SetCompletion() error = %v", err)
		}

		stored, _ := repo.FindByID(ctx, todo.ID)
		if !stored.Completed || stored.CompletedAt == nil {
			t.Errorf("expected completed todo with timestamp, got %+v", stored)
		}
		if stored.Version != 2 || todo.Version != 2 {
			t.Errorf("expected version 2, got stored=%d local=%d", stored.Version, todo.Version)
		}

		if err := repo.SetCompletion(ctx, todo, false, nil); err != nil {
			t.Fatalf("SetCompletion() error = %v", err)
		}

		stored, _ = repo.FindByID(ctx, todo.ID)
		if stored.Completed || stored.CompletedAt != nil {
			t.Errorf("expected reopened todo without timestamp, got %+v", stored)
		}
	})

	t.Run("stale version", func(t *testing.T) {
		stale, _ := repo.FindByID(ctx, todo.ID)
		fresh, _ := repo.FindByID(ctx, todo.ID)

		completedAt := time.Now().UTC()
		if err := repo.SetCompletion(ctx, fresh, true, &completedAt); err != nil {
			t.Fatalf("SetCompletion() error = %v", err)
		}

		err := repo.SetCompletion(ctx, stale, true, &completedAt)
		if !errors.Is(err, ErrOptimisticLock) {
			t.Errorf("expected ErrOptimisticLock, got %v", err)
		}
	})
}

func TestTodoRepository_Delete(t *testing.T) {
	repo := NewTodoRepository(setupTestDB(t))
	ctx := context.Background()

	todo, _ := repo.Create(ctx, "Delete me")

	if err := repo.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected deleted todo to be gone, got %v", err)
	}
	if err := repo.Delete(ctx, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on second delete, got %v", err)
	}
}

func TestTodoRepository_Ping(t *testing.T) {
	repo := NewTodoRepository(setupTestDB(t))
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
