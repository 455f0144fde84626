package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("user with this email already exists")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)

// InvalidFilterError signals a list filter value outside the status enum.
type InvalidFilterError struct {
	Filter string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid status filter: %s. Must be one of: %s",
		e.Filter, strings.Join(ValidStatuses, ", "))
}

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
