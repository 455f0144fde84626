package services

import (
	"errors"
	"time"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

type RegistrationRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (models.User, error)
}

type RegisterServiceImpl struct {
	users      *repositories.UserRepository
	bcryptCost int
}

func NewRegisterService(users *repositories.UserRepository, bcryptCost int) *RegisterServiceImpl {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegisterServiceImpl{users: users, bcryptCost: bcryptCost}
}

// RegisterUser checks email uniqueness before field validation, mirroring
// the order the API documents: duplicate, validation, password strength.
func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (models.User, error) {
	_, err := s.users.FindByEmail(db, req.Email)
	if err == nil {
		return models.User{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	if err := validation.ToValidationError(validation.ValidateUser(req.Email, req.Name)); err != nil {
		return models.User{}, err
	}

	if req.Password == "" {
		return models.User{}, models.ErrPasswordRequired
	}
	if len(req.Password) < MinPasswordLength {
		return models.User{}, models.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now()
	user := models.User{
		Email:     req.Email,
		Name:      req.Name,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(db, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}
