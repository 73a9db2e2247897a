package database

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures how often opening the database is attempted
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
}

// DefaultRetryConfig covers a database that is still waking up, as a paused
// hosted Postgres is on a cold start.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// ConnectWithRetry calls Connect until it succeeds, the attempts run out or
// ctx is done. Configuration errors are returned at once.
func (cm *ConnectionManager) ConnectWithRetry(ctx context.Context, config *RetryConfig) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := cm.Connect(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= config.MaxAttempts || errors.Is(err, ErrInvalidConnectionConfig) {
			break
		}

		delay := config.calculateDelay(attempt)
		cm.config.Logger.WithError(err).WithField("attempt", attempt).Warn("Database connection failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// calculateDelay returns InitialDelay * BackoffFactor^(attempt-1), capped at
// MaxDelay, plus up to 10% jitter
func (c *RetryConfig) calculateDelay(attempt int) time.Duration {
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))

	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.JitterEnabled {
		delay += rand.Float64() * 0.1 * delay
	}

	return time.Duration(delay)
}
