package validation

import (
	"strings"

	"task-tracker/backend/internal/models"
)

// FieldError describes one violated constraint on one field.
type FieldError struct {
	Field   string
	Message string
}

const (
	maxEmailLength = 180
	maxNameLength  = 255
	maxTitleLength = 255
)

// ValidateUser checks the registration fields. It returns one entry per
// violated field and an empty slice when everything passes.
func ValidateUser(email, name string) []FieldError {
	var errs []FieldError

	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	} else {
		if !isValidEmail(email) {
			errs = append(errs, FieldError{Field: "email", Message: "Email is not a valid email address"})
		}
		if len(email) > maxEmailLength {
			errs = append(errs, FieldError{Field: "email", Message: "Email cannot be longer than 180 characters"})
		}
	}

	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	} else if len(name) > maxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "Name cannot be longer than 255 characters"})
	}

	return errs
}

// ValidateTask checks the merged task fields before a write.
func ValidateTask(title, status string) []FieldError {
	var errs []FieldError

	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	} else if len(title) > maxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "Title cannot be longer than 255 characters"})
	}

	if !models.IsValidStatus(status) {
		errs = append(errs, FieldError{
			Field:   "status",
			Message: "Status must be one of: " + strings.Join(models.ValidStatuses, ", "),
		})
	}

	return errs
}

// ToValidationError folds field errors into the domain error type.
// Returns nil when the slice is empty.
func ToValidationError(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, seen := fields[e.Field]; !seen {
			fields[e.Field] = e.Message
		}
	}
	return models.NewValidationError(fields)
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if strings.Contains(domain, "@") || strings.ContainsAny(email, " \t") {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return local != "" && domain != ""
}
