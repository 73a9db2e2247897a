package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"puzzle-landing-api/internal/adapters/webhook"
	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/models"

	"github.com/sirupsen/logrus"
)

// successMarker is what the order workflow writes to its response body on
// success. It answers 200 for failures too.
const successMarker = "OK"

// orderService implements the OrderService interface
type orderService struct {
	config config.WebhookConfig
	poster webhook.Poster
	logger *logrus.Logger
}

// NewOrderService creates a new order service instance. poster may be nil
// when the webhook is not configured; every submission then fails with a
// ConfigError.
func NewOrderService(cfg config.WebhookConfig, poster webhook.Poster, logger *logrus.Logger) OrderService {
	if logger == nil {
		logger = logrus.New()
	}
	return &orderService{
		config: cfg,
		poster: poster,
		logger: logger,
	}
}

// SubmitOrder validates an order and forwards it to the order workflow
func (s *orderService) SubmitOrder(ctx context.Context, req *models.OrderRequest) error {
	if !s.config.IsConfigured() || s.poster == nil {
		s.logger.Error("Order webhook URL or token is not configured")
		return &ConfigError{Message: MsgMissingWebhook}
	}

	if req == nil {
		req = &models.OrderRequest{}
	}

	// Honeypot: report success without forwarding
	if models.Truthy(req.Company) && strings.TrimSpace(models.Stringify(req.Company)) != "" {
		s.logger.Info("Honeypot field filled, order dropped")
		return nil
	}

	for _, field := range models.RequiredOrderFields {
		if models.IsBlank(req.Field(field)) {
			return models.NewValidationError(field, "Missing field: "+field, nil)
		}
	}

	width := models.NumberOr(req.ImageWidth, 0)
	height := models.NumberOr(req.ImageHeight, 0)
	if models.IsUsableNumber(width) && models.IsUsableNumber(height) && math.Min(width, height) < models.MinPrintableSide {
		return models.NewValidationError("image",
			fmt.Sprintf("Image too small. Minimum shortest side is %dpx.", models.MinPrintableSide), nil)
	}

	result, err := s.poster.Post(ctx, models.NewOrderPayload(req))
	if err != nil {
		s.logger.WithError(err).Error("Order webhook unreachable")
		return err
	}

	if !result.IsSuccessStatus() {
		s.logger.WithFields(logrus.Fields{
			"status": result.StatusCode,
		}).Warn("Order webhook returned an error status")
		return &UpstreamError{Message: MsgWebhookFailed, StatusCode: result.StatusCode, Body: result.Body}
	}

	if !strings.Contains(strings.ToUpper(result.Body), successMarker) {
		s.logger.WithFields(logrus.Fields{
			"status": result.StatusCode,
		}).Warn("Order webhook response lacks success marker")
		return &UpstreamError{Message: MsgWebhookUnexpected, Body: result.Body}
	}

	s.logger.Info("Order forwarded")
	return nil
}
