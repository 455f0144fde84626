package repositories

import (
	"errors"
	"math"

	"task-tracker/backend/internal/models"

	"gorm.io/gorm"
)

// TaskPage is one pagination window of the filtered task set.
type TaskPage struct {
	Items []models.Task
	Total int64
	Page  int
	Limit int
	Pages int
}

type TaskRepository struct{}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

func (r *TaskRepository) FindByID(db *gorm.DB, id uint) (models.Task, error) {
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// FindPaginated returns the (page, limit) window of tasks ordered by
// created_at descending, id ascending on ties. Total counts the whole
// filtered set, not the window. An empty status means no filter.
func (r *TaskRepository) FindPaginated(db *gorm.DB, page, limit int, status string) (TaskPage, error) {
	countQuery := db.Model(&models.Task{})
	listQuery := db.Model(&models.Task{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
		listQuery = listQuery.Where("status = ?", status)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return TaskPage{}, err
	}

	var tasks []models.Task
	err := listQuery.
		Order("created_at DESC").
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return TaskPage{}, err
	}

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return TaskPage{
		Items: tasks,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

func (r *TaskRepository) Create(db *gorm.DB, task *models.Task) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
}

func (r *TaskRepository) Update(db *gorm.DB, task *models.Task) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(task).Error
	})
}

func (r *TaskRepository) Delete(db *gorm.DB, task *models.Task) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(task).Error
	})
}
