package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/services"
	"puzzle-landing-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

// OrderHandler forwards puzzle orders to the order workflow
type OrderHandler struct {
	orderService services.OrderService
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderService, logger *logrus.Logger) *OrderHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Handle validates and forwards an order
// @Summary Submit an order
// @Description Validates the order and forwards it to the order spreadsheet workflow. A filled "company" field is accepted and dropped.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body models.OrderRequest true "Order"
// @Success 200 {object} models.OrderAccepted
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {string} string "Method Not Allowed"
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} UpstreamErrorResponse
// @Router /order-submit [post]
func (h *OrderHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method != http.MethodPost {
		return methodNotAllowed(), nil
	}

	// A body that is not a JSON object is treated as an empty order
	var orderReq models.OrderRequest
	if !isBlankBody(req.Body) {
		if err := json.Unmarshal(req.Body, &orderReq); err != nil {
			h.logger.WithError(err).Warn("Malformed order body, treating as empty")
			orderReq = models.OrderRequest{}
		}
	}

	if err := h.orderService.SubmitOrder(ctx, &orderReq); err != nil {
		return errorResponse(err, nil), nil
	}

	return jsonResponse(http.StatusOK, models.OrderAccepted{OK: true}, nil), nil
}
