package models

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// TimestampFormat is the wire format for created_at/updated_at.
const TimestampFormat = "2006-01-02 15:04:05"

var ValidStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      *uint     `json:"user_id" gorm:"index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description *string   `json:"description"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskView is the client-facing representation of a task.
type TaskView struct {
	ID          uint    `json:"id"`
	UserID      *uint   `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (t Task) View() TaskView {
	return TaskView{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.Format(TimestampFormat),
		UpdatedAt:   t.UpdatedAt.Format(TimestampFormat),
	}
}
