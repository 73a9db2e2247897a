package webhook

import (
	"errors"
	"fmt"
)

// Common webhook error types
var (
	ErrInvalidEndpoint = errors.New("invalid webhook endpoint")
	ErrInvalidPayload  = errors.New("invalid webhook payload")
	ErrUnreachable     = errors.New("webhook unreachable")
)

// WebhookError represents a failed delivery attempt with additional context
type WebhookError struct {
	Op  string // Operation that failed (e.g., "Post")
	Err error  // Underlying error
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("webhook %s failed: %v", e.Op, e.Err)
}

func (e *WebhookError) Unwrap() error {
	return e.Err
}

// NewWebhookError creates a new WebhookError
func NewWebhookError(op string, err error) *WebhookError {
	return &WebhookError{
		Op:  op,
		Err: err,
	}
}

// IsUnreachable returns true if the request never got a response
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
