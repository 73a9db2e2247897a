package services

import (
	"fmt"

	"puzzle-landing-api/internal/adapters/webhook"
	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	SignatureService SignatureService
	QuoteService     QuoteService
	FeedbackService  FeedbackService
	OrderService     OrderService
}

// NewServiceContainer creates a new service container with all services.
// poster may be nil when the order webhook is not configured.
func NewServiceContainer(cfg *config.Config, feedbackRepo repositories.FeedbackRepository, poster webhook.Poster, logger *logrus.Logger) (*ServiceContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if feedbackRepo == nil {
		return nil, fmt.Errorf("feedback repository cannot be nil")
	}

	return &ServiceContainer{
		SignatureService: NewSignatureService(cfg.Cloudinary, logger),
		QuoteService:     NewQuoteService(logger),
		FeedbackService:  NewFeedbackService(feedbackRepo, logger),
		OrderService:     NewOrderService(cfg.Webhook, poster, logger),
	}, nil
}
