package repositories

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"task-tracker/backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedTask(t *testing.T, db *gorm.DB, title, status string, createdAt time.Time) models.Task {
	t.Helper()

	task := models.Task{
		Title:     title,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("Failed to seed task %q: %v", title, err)
	}
	return task
}

func TestTaskRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	created := seedTask(t, db, "Write report", models.StatusPending, time.Now())

	found, err := repo.FindByID(db, created.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found.Title != "Write report" {
		t.Errorf("Expected title 'Write report', got %q", found.Title)
	}
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	_, err := repo.FindByID(db, 9999)
	if !errors.Is(err, models.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_FindPaginated_PageCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		seedTask(t, db, fmt.Sprintf("Task %d", i), models.StatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.FindPaginated(db, 1, 5, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Total != 15 {
		t.Errorf("Expected total 15, got %d", page.Total)
	}
	if page.Pages != 3 {
		t.Errorf("Expected 3 pages, got %d", page.Pages)
	}
	if len(page.Items) != 5 {
		t.Errorf("Expected 5 items on page 1, got %d", len(page.Items))
	}

	// A window past the end is empty but keeps the filter-wide totals.
	beyond, err := repo.FindPaginated(db, 4, 5, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Errorf("Expected 0 items on page 4, got %d", len(beyond.Items))
	}
	if beyond.Total != 15 {
		t.Errorf("Expected total 15 on page 4, got %d", beyond.Total)
	}
	if beyond.Pages != 3 {
		t.Errorf("Expected 3 pages on page 4, got %d", beyond.Pages)
	}
}

func TestTaskRepository_FindPaginated_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	base := time.Now().Add(-time.Hour)
	oldest := seedTask(t, db, "Oldest", models.StatusPending, base)
	newest := seedTask(t, db, "Newest", models.StatusPending, base.Add(10*time.Minute))
	middle := seedTask(t, db, "Middle", models.StatusPending, base.Add(5*time.Minute))

	page, err := repo.FindPaginated(db, 1, 10, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(page.Items))
	}

	want := []uint{newest.ID, middle.ID, oldest.ID}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Errorf("Expected item %d to be task %d, got %d", i, id, page.Items[i].ID)
		}
	}
}

func TestTaskRepository_FindPaginated_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	now := time.Now()
	seedTask(t, db, "A", models.StatusPending, now)
	seedTask(t, db, "B", models.StatusCompleted, now)
	seedTask(t, db, "C", models.StatusCompleted, now)

	page, err := repo.FindPaginated(db, 1, 10, models.StatusCompleted)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Total != 2 {
		t.Errorf("Expected total 2, got %d", page.Total)
	}
	for _, task := range page.Items {
		if task.Status != models.StatusCompleted {
			t.Errorf("Expected only completed tasks, got status %q", task.Status)
		}
	}
}

func TestTaskRepository_FindPaginated_EmptyWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	page, err := repo.FindPaginated(db, 3, 10, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Total != 0 {
		t.Errorf("Expected total 0, got %d", page.Total)
	}
	if page.Pages != 0 {
		t.Errorf("Expected 0 pages on empty set, got %d", page.Pages)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(page.Items))
	}
}

func TestTaskRepository_CreateUpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository()

	now := time.Now()
	task := models.Task{Title: "Lifecycle", Status: models.StatusPending, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(db, &task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("Expected a generated ID after create")
	}

	task.Status = models.StatusInProgress
	if err := repo.Update(db, &task); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := repo.FindByID(db, task.ID)
	if err != nil {
		t.Fatalf("FindByID after update failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("Expected status in_progress, got %q", updated.Status)
	}

	if err := repo.Delete(db, &task); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(db, task.ID); !errors.Is(err, models.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after delete, got %v", err)
	}
}
