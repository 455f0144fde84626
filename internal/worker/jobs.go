package worker

import (
	"context"
	"log"
	"time"

	"task-tracker/backend/internal/models"

	"gorm.io/gorm"
)

// NewTaskCleanupHandler purges completed tasks whose last mutation is
// older than the retention window, then schedules the next sweep. queue
// may be nil for one-shot runs in tests.
func NewTaskCleanupHandler(db *gorm.DB, retention, interval time.Duration, queue *JobQueue) JobHandler {
	return func(ctx context.Context, job *Job) error {
		cutoff := time.Now().Add(-retention)

		result := db.WithContext(ctx).
			Where("status = ? AND updated_at < ?", models.StatusCompleted, cutoff).
			Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			log.Printf("Task cleanup removed %d completed tasks older than %s",
				result.RowsAffected, retention)
		}

		if queue != nil {
			if err := queue.EnqueueAt("maintenance", JobTypeTaskCleanup, nil,
				time.Now().Add(interval)); err != nil {
				log.Printf("Failed to schedule next task cleanup: %v", err)
			}
		}
		return nil
	}
}

// NewUserWelcomeHandler logs a welcome notification for a freshly
// registered user. Stands in for an outbound email integration.
func NewUserWelcomeHandler() JobHandler {
	return func(ctx context.Context, job *Job) error {
		email, _ := job.Payload["email"].(string)
		if email == "" {
			return nil
		}
		log.Printf("Welcome notification queued for %s", email)
		return nil
	}
}
