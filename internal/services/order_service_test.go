package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"puzzle-landing-api/internal/adapters/webhook"
	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWebhook = config.WebhookConfig{URL: "https://script.example.com/exec", Token: "t0ken"}

const validOrder = `{
	"name": "A",
	"email": "a@b.com",
	"size": "100",
	"pieces": 100,
	"total": 38,
	"imageUrl": "http://x/y.jpg",
	"imageWidth": 2000,
	"imageHeight": 2000
}`

func decodeOrder(t *testing.T, body string) *models.OrderRequest {
	t.Helper()
	var req models.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestOrderService_Forwards(t *testing.T) {
	poster := webhook.NewMockPoster("OK")
	svc := NewOrderService(testWebhook, poster, testLogger())

	require.NoError(t, svc.SubmitOrder(context.Background(), decodeOrder(t, validOrder)))
	require.Equal(t, 1, poster.Calls())

	payload := poster.LastPayload()
	assert.Equal(t, "A", payload["name"])
	assert.Equal(t, "a@b.com", payload["email"])
	assert.Equal(t, "", payload["phone"])
	assert.Equal(t, map[string]interface{}{}, payload["addons"])
	assert.Equal(t, float64(2000), payload["imageWidth"])
	assert.Equal(t, "", payload["imageFormat"])
	assert.Equal(t, "", payload["notes"])
}

func TestOrderService_Honeypot(t *testing.T) {
	poster := webhook.NewMockPoster("OK")
	svc := NewOrderService(testWebhook, poster, testLogger())

	// honeypot wins even over missing fields
	err := svc.SubmitOrder(context.Background(), &models.OrderRequest{Company: "spam"})
	require.NoError(t, err)
	assert.Equal(t, 0, poster.Calls())

	// blank honeypot is ignored
	req := decodeOrder(t, validOrder)
	req.Company = "   "
	require.NoError(t, svc.SubmitOrder(context.Background(), req))
	assert.Equal(t, 1, poster.Calls())
}

func TestOrderService_MissingFields(t *testing.T) {
	svc := NewOrderService(testWebhook, webhook.NewMockPoster("OK"), testLogger())

	for _, field := range models.RequiredOrderFields {
		t.Run(field, func(t *testing.T) {
			var raw map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(validOrder), &raw))
			raw[field] = "  "

			data, err := json.Marshal(raw)
			require.NoError(t, err)

			err = svc.SubmitOrder(context.Background(), decodeOrder(t, string(data)))
			requireValidationMessage(t, err, "Missing field: "+field)
		})
	}

	err := svc.SubmitOrder(context.Background(), decodeOrder(t, `{"name":"A"}`))
	requireValidationMessage(t, err, "Missing field: email")
}

func TestOrderService_ImageTooSmall(t *testing.T) {
	poster := webhook.NewMockPoster("OK")
	svc := NewOrderService(testWebhook, poster, testLogger())

	req := decodeOrder(t, validOrder)
	req.ImageWidth = float64(1199)
	err := svc.SubmitOrder(context.Background(), req)
	requireValidationMessage(t, err, "Image too small. Minimum shortest side is 1200px.")
	assert.Equal(t, 0, poster.Calls())

	// only one dimension: not enforced
	req = decodeOrder(t, validOrder)
	req.ImageWidth = float64(800)
	req.ImageHeight = nil
	require.NoError(t, svc.SubmitOrder(context.Background(), req))

	// non-numeric dimension: not enforced
	req = decodeOrder(t, validOrder)
	req.ImageWidth = "wide"
	req.ImageHeight = float64(10)
	require.NoError(t, svc.SubmitOrder(context.Background(), req))
}

func TestOrderService_NotConfigured(t *testing.T) {
	tests := []config.WebhookConfig{
		{},
		{URL: "https://script.example.com/exec"},
		{Token: "t"},
	}

	for _, cfg := range tests {
		poster := webhook.NewMockPoster("OK")
		svc := NewOrderService(cfg, poster, testLogger())

		err := svc.SubmitOrder(context.Background(), decodeOrder(t, validOrder))
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, MsgMissingWebhook, cfgErr.Message)
		assert.Equal(t, 0, poster.Calls())
	}
}

func TestOrderService_UpstreamResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantMsg    string
		wantStatus int
	}{
		{"plain OK", http.StatusOK, "OK", false, "", 0},
		{"status ok lowercase", http.StatusOK, "status: ok", false, "", 0},
		{"mixed case", http.StatusOK, "Ok, saved", false, "", 0},
		{"marker missing", http.StatusOK, "status: FAIL", true, MsgWebhookUnexpected, 0},
		{"empty body", http.StatusOK, "", true, MsgWebhookUnexpected, 0},
		{"error status with OK body", http.StatusInternalServerError, "OK", true, MsgWebhookFailed, 500},
		{"forbidden", http.StatusForbidden, "bad token", true, MsgWebhookFailed, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &webhook.MockPoster{Result: &webhook.Result{StatusCode: tt.status, Body: tt.body}}
			svc := NewOrderService(testWebhook, poster, testLogger())

			err := svc.SubmitOrder(context.Background(), decodeOrder(t, validOrder))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr), "got %v", err)
			assert.Equal(t, tt.wantMsg, upErr.Message)
			assert.Equal(t, tt.wantStatus, upErr.StatusCode)
			assert.Equal(t, tt.body, upErr.Body)
		})
	}
}

func TestOrderService_Unreachable(t *testing.T) {
	poster := &webhook.MockPoster{Err: webhook.NewWebhookError("Post", webhook.ErrUnreachable)}
	svc := NewOrderService(testWebhook, poster, testLogger())

	err := svc.SubmitOrder(context.Background(), decodeOrder(t, validOrder))
	require.Error(t, err)
	assert.True(t, webhook.IsUnreachable(err))

	var upErr *UpstreamError
	assert.False(t, errors.As(err, &upErr))
}
