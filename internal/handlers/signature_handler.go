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

// SignatureHandler issues signed upload parameters
type SignatureHandler struct {
	signatureService services.SignatureService
	logger           *logrus.Logger
}

// NewSignatureHandler creates a new signature handler
func NewSignatureHandler(signatureService services.SignatureService, logger *logrus.Logger) *SignatureHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &SignatureHandler{
		signatureService: signatureService,
		logger:           logger,
	}
}

// Handle signs an upload
// @Summary Sign an upload
// @Description Returns the parameters and signature for a signed media upload. The API secret is never returned.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body models.SignRequest false "Optional target folder"
// @Success 200 {object} models.SignResponse
// @Failure 405 {string} string "Method Not Allowed"
// @Failure 500 {object} models.ErrorResponse
// @Router /sign-upload [post]
func (h *SignatureHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method != http.MethodPost {
		return methodNotAllowed(), nil
	}

	var signReq models.SignRequest
	if !isBlankBody(req.Body) {
		if err := json.Unmarshal(req.Body, &signReq); err != nil {
			h.logger.WithError(err).Warn("Malformed sign-upload body")
			return errorResponse(err, nil), nil
		}
	}

	resp, err := h.signatureService.SignUpload(ctx, &signReq)
	if err != nil {
		return errorResponse(err, nil), nil
	}

	return jsonResponse(http.StatusOK, resp, nil), nil
}
