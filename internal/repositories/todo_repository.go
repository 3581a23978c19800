package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	model "todo-digest.com/todo-digest/pkg/models"
)

type TodoRepository struct {
	db *gorm.DB
}

var (
	ErrTodoNotFound   = errors.New("todo not found")
	ErrOptimisticLock = errors.New("optimistic locking conflict")
)

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, text string) (*model.Todo, error) {
	todo := &model.Todo{
		Task:    text,
		Version: 1,
	}

	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, err
	}

	return todo, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	err := r.db.WithContext(ctx).Order("id asc").Find(&todos).Error
	return todos, err
}

// ListTexts returns only the task text of every todo, in id order.
func (r *TodoRepository) ListTexts(ctx context.Context) ([]string, error) {
	texts := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&model.Todo{}).Order("id asc").Pluck("task", &texts).Error
	return texts, err
}

func (r *TodoRepository) UpdateText(ctx context.Context, id uint, text string) (*model.Todo, error) {
	res := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ?", id).
		Update("task", text)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return r.FindByID(ctx, id)
}

// SetCompletion writes completed and completed_at together, guarded by the
// version todo was read at.
func (r *TodoRepository) SetCompletion(
	ctx context.Context,
	todo *model.Todo,
	completed bool,
	completedAt *time.Time,
) error {
	res := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ? AND version = ?", todo.ID, todo.Version).
		Updates(map[string]interface{}{
			"completed":    completed,
			"completed_at": completedAt,
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	todo.Completed = completed
	todo.CompletedAt = completedAt
	todo.Version++
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
