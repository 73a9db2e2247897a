package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/services"
	"puzzle-landing-api/pkg/lambda"
)

// UpstreamErrorResponse is the 502 body for a failed order forward
type UpstreamErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body"`
}

// jsonResponse marshals body with the given status. extra headers are
// added after Content-Type.
func jsonResponse(status int, body interface{}, extra map[string]string) *lambda.Response {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(models.ErrorResponse{Error: err.Error()})
	}

	resp := &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       data,
	}
	for k, v := range extra {
		resp.SetHeader(k, v)
	}
	return resp
}

// methodNotAllowed is the plain-text 405 shared by the POST-only endpoints
func methodNotAllowed() *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusMethodNotAllowed,
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
			"Allow":        http.MethodPost,
		},
		Body: []byte("Method Not Allowed"),
	}
}

// errorResponse maps a service error onto status and body. Validation
// errors are 400, upstream answers 502, everything else 500 with the error
// text.
func errorResponse(err error, extra map[string]string) *lambda.Response {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return jsonResponse(http.StatusBadRequest, models.ErrorResponse{Error: validationErr.Message}, extra)
	}

	var configErr *services.ConfigError
	if errors.As(err, &configErr) {
		return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: configErr.Message}, extra)
	}

	var upstreamErr *services.UpstreamError
	if errors.As(err, &upstreamErr) {
		return jsonResponse(http.StatusBadGateway, UpstreamErrorResponse{
			Error:  upstreamErr.Message,
			Status: upstreamErr.StatusCode,
			Body:   upstreamErr.Body,
		}, extra)
	}

	return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()}, extra)
}

// isBlankBody reports whether a request carried no JSON at all
func isBlankBody(body []byte) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
