package services

import (
	"context"

	"puzzle-landing-api/internal/models"
)

// SignatureService mints signed upload parameters for the media host
type SignatureService interface {
	SignUpload(ctx context.Context, req *models.SignRequest) (*models.SignResponse, error)
}

// QuoteService prices a puzzle and comments on the image quality
type QuoteService interface {
	// CalculateQuote returns *models.ValidationError for rejected options
	CalculateQuote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

// FeedbackService validates and stores customer feedback
type FeedbackService interface {
	// SubmitFeedback returns *models.ValidationError for bad input and an
	// error wrapping ErrFeedbackNotSaved when the store fails
	SubmitFeedback(ctx context.Context, req *models.FeedbackRequest, meta models.ClientMeta) error
}

// OrderService validates an order and forwards it to the order workflow
type OrderService interface {
	// SubmitOrder returns *ConfigError, *models.ValidationError,
	// *UpstreamError, or a transport error when the workflow is unreachable
	SubmitOrder(ctx context.Context, req *models.OrderRequest) error
}
