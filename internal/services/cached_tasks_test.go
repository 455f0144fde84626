package services

import (
	"errors"
	"testing"
	"time"

	"task-tracker/backend/internal/cache"
	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingTaskService records call counts so the tests can tell a cache
// hit from a pass-through.
type countingTaskService struct {
	listCalls int
	getCalls  int
	task      models.Task
	page      repositories.TaskPage
}

func (s *countingTaskService) ListTasks(db *gorm.DB, page, limit int, status string) (repositories.TaskPage, error) {
	s.listCalls++
	return s.page, nil
}

func (s *countingTaskService) GetTaskByID(db *gorm.DB, id uint) (models.Task, error) {
	s.getCalls++
	if id != s.task.ID {
		return models.Task{}, models.ErrTaskNotFound
	}
	return s.task, nil
}

func (s *countingTaskService) CreateTask(db *gorm.DB, input TaskCreateInput) (models.Task, error) {
	return s.task, nil
}

func (s *countingTaskService) UpdateTask(db *gorm.DB, id uint, input TaskUpdateInput) (models.Task, error) {
	return s.task, nil
}

func (s *countingTaskService) DeleteTask(db *gorm.DB, id uint) error {
	return nil
}

func newCachedFixture() (*CachedTaskService, *countingTaskService) {
	now := time.Now()
	inner := &countingTaskService{
		task: models.Task{ID: 1, Title: "Cached task", Status: models.StatusPending, CreatedAt: now, UpdatedAt: now},
		page: repositories.TaskPage{
			Items: []models.Task{{ID: 1, Title: "Cached task", Status: models.StatusPending}},
			Total: 1, Page: 1, Limit: 10, Pages: 1,
		},
	}
	return NewCachedTaskService(inner, cache.NewMultiLevelCache(nil)), inner
}

func TestCachedTaskService_GetTaskByID_CachesSecondRead(t *testing.T) {
	svc, inner := newCachedFixture()

	first, err := svc.GetTaskByID(nil, 1)
	require.NoError(t, err)

	second, err := svc.GetTaskByID(nil, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, inner.getCalls)
}

func TestCachedTaskService_GetTaskByID_MissIsNotCached(t *testing.T) {
	svc, inner := newCachedFixture()

	_, err := svc.GetTaskByID(nil, 42)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)

	_, err = svc.GetTaskByID(nil, 42)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
	assert.Equal(t, 2, inner.getCalls)
}

func TestCachedTaskService_ListTasks_CachesWindow(t *testing.T) {
	svc, inner := newCachedFixture()

	_, err := svc.ListTasks(nil, 1, 10, "")
	require.NoError(t, err)

	page, err := svc.ListTasks(nil, 1, 10, "")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listCalls)
	assert.Equal(t, int64(1), page.Total)

	// A different window is its own key.
	_, err = svc.ListTasks(nil, 2, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedTaskService_ListTasks_RejectsInvalidStatusBeforeCache(t *testing.T) {
	svc, inner := newCachedFixture()

	_, err := svc.ListTasks(nil, 1, 10, "bogus")

	var filterErr *models.InvalidFilterError
	assert.True(t, errors.As(err, &filterErr))
	assert.Equal(t, 0, inner.listCalls)
}

func TestCachedTaskService_MutationsInvalidateListWindows(t *testing.T) {
	svc, inner := newCachedFixture()

	_, err := svc.ListTasks(nil, 1, 10, "")
	require.NoError(t, err)

	_, err = svc.CreateTask(nil, TaskCreateInput{Title: "New"})
	require.NoError(t, err)

	_, err = svc.ListTasks(nil, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}

func TestCachedTaskService_UpdateInvalidatesTaskKey(t *testing.T) {
	svc, inner := newCachedFixture()

	_, err := svc.GetTaskByID(nil, 1)
	require.NoError(t, err)

	newTitle := "Renamed"
	_, err = svc.UpdateTask(nil, 1, TaskUpdateInput{Title: &newTitle})
	require.NoError(t, err)

	_, err = svc.GetTaskByID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.getCalls)
}

func TestCachedTaskService_DeleteInvalidatesTaskKey(t *testing.T) {
	svc, inner := newCachedFixture()

	_, err := svc.GetTaskByID(nil, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(nil, 1))

	_, err = svc.GetTaskByID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.getCalls)
}
