package handlers

import (
	"errors"
	"log"
	"net/http"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/services"
	"task-tracker/backend/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
	jobs            *worker.JobQueue
}

// NewRegisterHandler wires the registration endpoint. jobs may be nil when
// no queue is configured; notifications are then skipped.
func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService, jobs *worker.JobQueue) *RegisterHandler {
	return &RegisterHandler{db: db, registerService: registerService, jobs: jobs}
}

func (h *RegisterHandler) Register(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	user, err := h.registerService.RegisterUser(h.db, req)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			respondError(c, http.StatusBadRequest, "User with this email already exists")
		case errors.As(err, &validationErr):
			respondValidationError(c, http.StatusBadRequest, validationErr.Fields)
		case errors.Is(err, models.ErrPasswordRequired):
			respondError(c, http.StatusBadRequest, "Password is required")
		case errors.Is(err, models.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		default:
			log.Printf("Error registering user (email=%q): %v", req.Email, err)
			respondError(c, http.StatusInternalServerError, "An error occurred while registering the user")
		}
		return
	}

	log.Printf("User registered successfully (id=%d email=%q)", user.ID, user.Email)

	if h.jobs != nil {
		if err := h.jobs.Enqueue("default", worker.JobTypeUserWelcome, map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		}); err != nil {
			log.Printf("Failed to enqueue welcome job for user %d: %v", user.ID, err)
		}
	}

	respondMessage(c, http.StatusCreated, "User registered successfully", user.View())
}
