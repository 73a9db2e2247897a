package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// maxErrorBody caps how much of a rejected response is kept for logging
const maxErrorBody = 4096

// FeedbackRepository inserts feedback rows through the Supabase REST API
// using the service role key.
type FeedbackRepository struct {
	endpoint   string
	serviceKey string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFeedbackRepository creates a repository writing to {baseURL}/rest/v1/{table}.
// A nil httpClient uses http.DefaultClient, which has no timeout.
func NewFeedbackRepository(baseURL, serviceKey, table string, httpClient *http.Client, logger *logrus.Logger) (*FeedbackRepository, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" || serviceKey == "" || table == "" {
		return nil, repositories.NewRepositoryErrorWithMessage("init", "feedback",
			"supabase url, service role key and table are required", repositories.ErrInvalidConfig)
	}

	endpoint, err := url.JoinPath(baseURL, "rest", "v1", table)
	if err != nil {
		return nil, repositories.NewRepositoryErrorWithMessage("init", "feedback",
			fmt.Sprintf("invalid supabase url: %v", err), repositories.ErrInvalidConfig)
	}

	return &FeedbackRepository{
		endpoint:   endpoint,
		serviceKey: serviceKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Create appends one feedback row
func (r *FeedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	if record == nil {
		return repositories.NewRepositoryErrorWithMessage("create", "feedback", "record is nil", repositories.ErrRejected)
	}

	body, err := json.Marshal([]*models.FeedbackRecord{record})
	if err != nil {
		return repositories.NewRepositoryError("create", "feedback", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return repositories.NewRepositoryError("create", "feedback", err)
	}
	req.Header.Set("apikey", r.serviceKey)
	req.Header.Set("Authorization", "Bearer "+r.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"operation": "create",
			"duration":  time.Since(start),
			"error":     err.Error(),
		}).Error("Supabase request failed")
		return repositories.ConnectionError("feedback", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		r.logger.WithFields(logrus.Fields{
			"operation": "create",
			"status":    resp.StatusCode,
			"duration":  time.Since(start),
			"body":      string(detail),
		}).Error("Supabase rejected insert")
		return repositories.NewRepositoryErrorWithMessage("create", "feedback",
			fmt.Sprintf("supabase insert returned status %d", resp.StatusCode),
			fmt.Errorf("%w: status %d: %s", repositories.ErrRejected, resp.StatusCode, detail))
	}

	r.logger.WithFields(logrus.Fields{
		"operation": "create",
		"status":    resp.StatusCode,
		"duration":  time.Since(start),
	}).Debug("Supabase insert succeeded")

	return nil
}

// Close is a no-op; the HTTP client is shared
func (r *FeedbackRepository) Close() error {
	return nil
}
