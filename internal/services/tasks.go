package services

import (
	"time"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/validation"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TaskCreateInput is the typed create payload. Description and UserID are
// optional. Status falls back to pending only when absent; a status that is
// present, empty string included, must be a member of the enum.
type TaskCreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	UserID      *uint   `json:"user_id"`
}

// TaskUpdateInput is the typed partial-update payload. A nil pointer means
// the field was absent and keeps its stored value; a non-nil pointer is
// applied even when it points at an empty string.
type TaskUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type TaskService interface {
	ListTasks(db *gorm.DB, page, limit int, status string) (repositories.TaskPage, error)
	GetTaskByID(db *gorm.DB, id uint) (models.Task, error)
	CreateTask(db *gorm.DB, input TaskCreateInput) (models.Task, error)
	UpdateTask(db *gorm.DB, id uint, input TaskUpdateInput) (models.Task, error)
	DeleteTask(db *gorm.DB, id uint) error
}

type TaskServiceImpl struct {
	tasks *repositories.TaskRepository
}

func NewTaskService(tasks *repositories.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks}
}

// ListTasks coerces page to >= 1 and limit into [1, MaxPageSize] without
// erroring; an unknown non-empty status filter is rejected.
func (s *TaskServiceImpl) ListTasks(db *gorm.DB, page, limit int, status string) (repositories.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if status != "" && !models.IsValidStatus(status) {
		return repositories.TaskPage{}, &models.InvalidFilterError{Filter: status}
	}

	return s.tasks.FindPaginated(db, page, limit, status)
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, id uint) (models.Task, error) {
	return s.tasks.FindByID(db, id)
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, input TaskCreateInput) (models.Task, error) {
	status := models.StatusPending
	if input.Status != nil {
		status = *input.Status
	}

	if err := validation.ToValidationError(validation.ValidateTask(input.Title, status)); err != nil {
		return models.Task{}, err
	}

	now := time.Now()
	task := models.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(db, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask fetches first, so an unknown id yields not-found before any
// validation runs. Only supplied fields are merged; the merged state is
// re-validated and nothing is written on failure.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uint, input TaskUpdateInput) (models.Task, error) {
	task, err := s.tasks.FindByID(db, id)
	if err != nil {
		return models.Task{}, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := validation.ToValidationError(validation.ValidateTask(task.Title, task.Status)); err != nil {
		return models.Task{}, err
	}

	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(db, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uint) error {
	task, err := s.tasks.FindByID(db, id)
	if err != nil {
		return err
	}
	return s.tasks.Delete(db, &task)
}
