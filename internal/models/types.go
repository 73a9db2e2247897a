package models

import (
	"time"
)

// Puzzle catalogue constants
const (
	// SupportedPieceCount is the only piece count currently offered
	SupportedPieceCount = 100

	// MinQuotableSide is the shortest image side (px) below which no quote is given
	MinQuotableSide = 300

	// MinPrintableSide is the shortest image side (px) an order must meet
	MinPrintableSide = 1200

	// RecommendedSide is the shortest image side (px) for best print quality
	RecommendedSide = 2000
)

// ErrorResponse is the JSON body of every handled failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// HealthCheck represents system health status
type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Mode      string            `json:"mode"`
	Services  map[string]string `json:"services"`
}
