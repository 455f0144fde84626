package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageSize)))
	status := c.Query("status")

	result, err := h.taskService.ListTasks(h.db, page, limit, status)
	if err != nil {
		var filterErr *models.InvalidFilterError
		if errors.As(err, &filterErr) {
			respondError(c, http.StatusBadRequest,
				"Invalid status. Must be one of: "+strings.Join(models.ValidStatuses, ", "))
			return
		}
		log.Printf("Error fetching tasks (page=%d limit=%d status=%q): %v", page, limit, status, err)
		respondError(c, http.StatusInternalServerError, "An error occurred while fetching tasks")
		return
	}

	views := make([]models.TaskView, 0, len(result.Items))
	for _, task := range result.Items {
		views = append(views, task.View())
	}

	respondList(c, http.StatusOK, views, Pagination{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Pages: result.Pages,
	})
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(h.db, id)
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Error fetching task %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "An error occurred while fetching the task")
		return
	}

	respondData(c, http.StatusOK, task.View())
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input services.TaskCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	task, err := h.taskService.CreateTask(h.db, input)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			respondValidationError(c, http.StatusBadRequest, validationErr.Fields)
			return
		}
		log.Printf("Error creating task (title=%q): %v", input.Title, err)
		respondError(c, http.StatusInternalServerError, "An error occurred while creating the task")
		return
	}

	log.Printf("Task created successfully (id=%d title=%q)", task.ID, task.Title)
	respondMessage(c, http.StatusCreated, "Task created successfully", task.View())
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	// Existence is checked before the body is inspected, so an unknown id
	// is reported as 404 even alongside an invalid payload.
	if _, err := h.taskService.GetTaskByID(h.db, id); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Error fetching task %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "An error occurred while updating the task")
		return
	}

	var input services.TaskUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	task, err := h.taskService.UpdateTask(h.db, id, input)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, models.ErrTaskNotFound):
			respondError(c, http.StatusNotFound, "Task not found")
		case errors.As(err, &validationErr):
			respondValidationError(c, http.StatusBadRequest, validationErr.Fields)
		default:
			log.Printf("Error updating task %d: %v", id, err)
			respondError(c, http.StatusInternalServerError, "An error occurred while updating the task")
		}
		return
	}

	log.Printf("Task updated successfully (id=%d title=%q)", task.ID, task.Title)
	respondMessage(c, http.StatusOK, "Task updated successfully", task.View())
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(h.db, id); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Error deleting task %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "An error occurred while deleting the task")
		return
	}

	log.Printf("Task deleted successfully (id=%d)", id)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func parseTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return uint(id), true
}
