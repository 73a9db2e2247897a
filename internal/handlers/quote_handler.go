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

// quotes depend on the request only and must never be cached
var noStore = map[string]string{"Cache-Control": "no-store"}

// QuoteHandler prices puzzle options
type QuoteHandler struct {
	quoteService services.QuoteService
	logger       *logrus.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService services.QuoteService, logger *logrus.Logger) *QuoteHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// Handle computes a quote
// @Summary Quote a puzzle
// @Description Validates size, pieces and image metadata, then returns the price breakdown and one image quality note.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body models.QuoteRequest true "Puzzle options"
// @Success 200 {object} models.QuoteResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {string} string "Method Not Allowed"
// @Failure 500 {object} models.ErrorResponse
// @Router /quote [post]
func (h *QuoteHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method != http.MethodPost {
		return methodNotAllowed(), nil
	}

	var quoteReq models.QuoteRequest
	if !isBlankBody(req.Body) {
		if err := json.Unmarshal(req.Body, &quoteReq); err != nil {
			h.logger.WithError(err).Warn("Malformed quote body")
			return errorResponse(err, noStore), nil
		}
	}

	resp, err := h.quoteService.CalculateQuote(ctx, &quoteReq)
	if err != nil {
		return errorResponse(err, noStore), nil
	}

	return jsonResponse(http.StatusOK, resp, noStore), nil
}
