package model

import "time"

// Todo is a single task-list entry. CompletedAt is set exactly while
// Completed is true.
type Todo struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Task        string     `gorm:"not null" json:"task"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Version     uint       `gorm:"not null;default:1" json:"-"`
}

func (Todo) TableName() string {
	return "todos"
}

// Toggled returns the completion state that follows t's current one.
func (t Todo) Toggled(now time.Time) (bool, *time.Time) {
	if t.Completed {
		return false, nil
	}
	completedAt := now.UTC()
	return true, &completedAt
}
