package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenParam is the query parameter carrying the shared secret
const TokenParam = "token"

// Client posts JSON to a spreadsheet workflow endpoint. The token travels as
// a query parameter because the receiving script cannot read headers.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a client for baseURL with token appended as ?token=.
// A nil httpClient uses http.DefaultClient, which has no timeout; the
// request is bounded only by ctx.
func NewClient(baseURL, token string, httpClient *http.Client, logger *logrus.Logger) (*Client, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	endpoint, err := withToken(baseURL, token)
	if err != nil {
		return nil, NewWebhookError("init", err)
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func withToken(baseURL, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidEndpoint, baseURL)
	}

	q := u.Query()
	q.Set(TokenParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Post implements Poster.Post
func (c *Client) Post(ctx context.Context, payload interface{}) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewWebhookError("Post", fmt.Errorf("%w: %v", ErrInvalidPayload, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewWebhookError("Post", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"duration": time.Since(start),
			"error":    redact(err),
		}).Error("Webhook request failed")
		return nil, NewWebhookError("Post", fmt.Errorf("%w: %s", ErrUnreachable, redact(err)))
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewWebhookError("Post", fmt.Errorf("%w: reading response: %v", ErrUnreachable, err))
	}

	c.logger.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
		"bytes":    len(text),
	}).Debug("Webhook responded")

	return &Result{StatusCode: resp.StatusCode, Body: string(text)}, nil
}

// redact drops the request URL, and with it the token, from transport errors.
func redact(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Sprintf("%s: %v", urlErr.Op, urlErr.Err)
	}
	return err.Error()
}
