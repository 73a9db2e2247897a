package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrConnection is returned when the store cannot be reached
	ErrConnection = errors.New("store connection error")

	// ErrRejected is returned when the store refuses a write
	ErrRejected = errors.New("store rejected write")

	// ErrConstraint is returned when a database constraint is violated
	ErrConstraint = errors.New("constraint violation")

	// ErrInvalidConfig is returned when a store is configured incompletely
	ErrInvalidConfig = errors.New("invalid store configuration")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		Err:    err,
	}
}

// NewRepositoryErrorWithMessage creates a new repository error with a custom message
func NewRepositoryErrorWithMessage(op, entity, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Err:     err,
		Message: message,
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "connect",
		Entity:  entity,
		Err:     fmt.Errorf("%w: %v", ErrConnection, err),
		Message: fmt.Sprintf("%s store connection failed: %v", entity, err),
	}
}

// IsConnection checks if an error is a "connection" error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsRejected checks if the store refused the write
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
