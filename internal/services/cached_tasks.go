package services

import (
	"fmt"
	"time"

	"task-tracker/backend/internal/cache"
	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"

	"gorm.io/gorm"
)

const (
	taskCacheTTL = 30 * time.Minute
	listCacheTTL = 5 * time.Minute
)

// CachedTaskService decorates a TaskService with a multi-level cache.
// Reads are served from cache when possible; every mutation invalidates
// the affected task key and all list windows.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.MultiLevelCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.MultiLevelCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func taskCacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

func listCacheKey(page, limit int, status string) string {
	return fmt.Sprintf("tasks_page:%d:%d:%s", page, limit, status)
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, page, limit int, status string) (repositories.TaskPage, error) {
	if status != "" && !models.IsValidStatus(status) {
		return repositories.TaskPage{}, &models.InvalidFilterError{Filter: status}
	}

	key := listCacheKey(page, limit, status)

	var cached repositories.TaskPage
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	result, err := s.taskService.ListTasks(db, page, limit, status)
	if err != nil {
		return result, err
	}

	s.cache.Set(key, result, listCacheTTL)
	return result, nil
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, id uint) (models.Task, error) {
	key := taskCacheKey(id)

	var cached models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	task, err := s.taskService.GetTaskByID(db, id)
	if err != nil {
		return task, err
	}

	s.cache.Set(key, task, taskCacheTTL)
	return task, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, input TaskCreateInput) (models.Task, error) {
	task, err := s.taskService.CreateTask(db, input)
	if err != nil {
		return task, err
	}

	s.cache.Set(taskCacheKey(task.ID), task, taskCacheTTL)
	s.cache.DeletePattern("tasks_page:*")

	return task, nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uint, input TaskUpdateInput) (models.Task, error) {
	task, err := s.taskService.UpdateTask(db, id, input)
	if err != nil {
		return task, err
	}

	s.cache.Delete(taskCacheKey(id))
	s.cache.DeletePattern("tasks_page:*")

	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uint) error {
	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}

	s.cache.Delete(taskCacheKey(id))
	s.cache.DeletePattern("tasks_page:*")

	return nil
}

func (s *CachedTaskService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}
