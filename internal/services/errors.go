package services

import (
	"errors"
	"fmt"
)

// ValidationError reports input the user can correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StorageError wraps a failed collection write or read. The in-memory state
// keeps the change that triggered it.
type StorageError struct {
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

func IsExport(err error) bool {
	var target *ExportError
	return errors.As(err, &target)
}
