package repositories

import (
	"context"
	"fmt"

	"puzzle-landing-api/internal/models"
)

// FeedbackRepository appends feedback rows. There is no read, update or
// delete path; the table is owned outside this service.
type FeedbackRepository interface {
	// Create appends one feedback row
	Create(ctx context.Context, record *models.FeedbackRecord) error

	// Close releases any resources held by the store
	Close() error
}

// UnavailableFeedbackRepository stands in when no store could be built. Every
// write fails with the build error so the rest of the API keeps serving.
type UnavailableFeedbackRepository struct {
	Err error
}

// Create always fails
func (r *UnavailableFeedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	return NewRepositoryErrorWithMessage("create", "feedback", "feedback store is not configured",
		fmt.Errorf("%w: %v", ErrInvalidConfig, r.Err))
}

// Close is a no-op
func (r *UnavailableFeedbackRepository) Close() error {
	return nil
}
