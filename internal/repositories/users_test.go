package repositories

import (
	"errors"
	"testing"
	"time"

	"task-tracker/backend/internal/models"

	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email, name string) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		Email:     email,
		Name:      name,
		Password:  "hashed-password",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %q: %v", email, err)
	}
	return user
}

func TestUserRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository()

	created := seedUser(t, db, "alice@example.com", "Alice")

	found, err := repo.FindByID(db, created.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %q", found.Email)
	}
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository()

	_, err := repo.FindByID(db, 9999)
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository()

	seedUser(t, db, "bob@example.com", "Bob")

	found, err := repo.FindByEmail(db, "bob@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found.Name != "Bob" {
		t.Errorf("Expected name Bob, got %q", found.Name)
	}

	if _, err := repo.FindByEmail(db, "nobody@example.com"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound for unknown email, got %v", err)
	}
}

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository()

	now := time.Now()
	user := models.User{
		Email:     "carol@example.com",
		Name:      "Carol",
		Password:  "hashed-password",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(db, &user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected a generated ID after create")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository()

	seedUser(t, db, "dave@example.com", "Dave")

	now := time.Now()
	dup := models.User{
		Email:     "dave@example.com",
		Name:      "Dave Again",
		Password:  "hashed-password",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(db, &dup); err == nil {
		t.Error("Expected the unique index to reject a duplicate email")
	}
}
