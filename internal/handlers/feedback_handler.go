package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/services"
	"puzzle-landing-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

// msgServerError hides unexpected failures from the public feedback form
const msgServerError = "Server error"

// clientIPHeaders are checked in order for the caller's address
var clientIPHeaders = []string{"X-Nf-Client-Connection-Ip", "X-Forwarded-For"}

// corsHeaders go on every feedback response; the form is on a public page
var corsHeaders = map[string]string{"Access-Control-Allow-Origin": "*"}

// FeedbackHandler records star ratings and comments
type FeedbackHandler struct {
	feedbackService services.FeedbackService
	logger          *logrus.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService services.FeedbackService, logger *logrus.Logger) *FeedbackHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Handle stores one feedback submission
// @Summary Submit feedback
// @Description Stores a 1-5 rating with a comment. OPTIONS answers the CORS preflight.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body models.FeedbackRequest true "Feedback"
// @Success 200 {object} models.FeedbackAccepted
// @Success 204 "Preflight"
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch req.Method {
	case http.MethodOptions:
		return preflight(), nil
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method not allowed"}, corsHeaders), nil
	}

	var feedbackReq models.FeedbackRequest
	if !isBlankBody(req.Body) {
		if err := json.Unmarshal(req.Body, &feedbackReq); err != nil {
			h.logger.WithError(err).Error("Malformed feedback body")
			return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: msgServerError}, corsHeaders), nil
		}
	}

	meta := models.ClientMeta{
		UserAgent: req.Header("User-Agent"),
		IP:        clientIP(req),
	}

	err := h.feedbackService.SubmitFeedback(ctx, &feedbackReq, meta)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return jsonResponse(http.StatusBadRequest, models.ErrorResponse{Error: validationErr.Message}, corsHeaders), nil
		case errors.Is(err, services.ErrFeedbackNotSaved):
			return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: services.MsgFeedbackNotSaved}, corsHeaders), nil
		default:
			h.logger.WithError(err).Error("Feedback submission failed")
			return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: msgServerError}, corsHeaders), nil
		}
	}

	return jsonResponse(http.StatusOK, models.FeedbackAccepted{Success: true}, corsHeaders), nil
}

func preflight() *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusNoContent,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "POST, OPTIONS",
		},
	}
}

func clientIP(req *lambda.Request) string {
	for _, name := range clientIPHeaders {
		if ip := req.Header(name); ip != "" {
			return ip
		}
	}
	return ""
}
