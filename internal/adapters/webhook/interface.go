package webhook

import (
	"context"
)

// Result is what the receiving workflow answered. Any status is a Result;
// only transport failures are errors.
type Result struct {
	StatusCode int
	Body       string
}

// IsSuccessStatus reports whether the status is 2xx
func (r *Result) IsSuccessStatus() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Poster delivers a JSON payload to the order workflow
type Poster interface {
	// Post sends payload as a JSON body and returns the raw response
	Post(ctx context.Context, payload interface{}) (*Result, error)
}
