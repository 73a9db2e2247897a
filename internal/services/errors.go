package services

import (
	"errors"
	"fmt"
)

// Messages returned to callers for server-side failures
const (
	MsgMissingCloudinary = "Missing Cloudinary env vars"
	MsgMissingWebhook    = "Missing SHEETS_WEBHOOK_URL/APPS_SCRIPT_URL or SHEETS_TOKEN/PUZZLE_REQUEST_TOKEN"
	MsgWebhookFailed     = "Sheets webhook failed"
	MsgWebhookUnexpected = "Sheets webhook returned unexpected response"
	MsgFeedbackNotSaved  = "Failed to save feedback"
)

// ErrFeedbackNotSaved is returned when the feedback store refuses or cannot
// take a row. The store error is wrapped but must not reach the caller.
var ErrFeedbackNotSaved = errors.New(MsgFeedbackNotSaved)

// ConfigError reports a required setting that is absent. Message never
// includes the setting's value.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// UpstreamError reports an upstream that answered, but not with success.
// StatusCode is zero when the status is not part of the report.
type UpstreamError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}
