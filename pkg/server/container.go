package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"puzzle-landing-api/internal/adapters/webhook"
	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/database"
	"puzzle-landing-api/internal/repositories"
	"puzzle-landing-api/internal/repositories/sqlstore"
	"puzzle-landing-api/internal/repositories/supabase"
	"puzzle-landing-api/internal/services"

	"github.com/sirupsen/logrus"
)

// Backing service states reported by HealthCheck
const (
	StateHealthy       = "healthy"
	StateUnhealthy     = "unhealthy"
	StateNotConfigured = "not_configured"
)

// defaultSQLitePath is used for the sqlite store when DATABASE_URL is empty
const defaultSQLitePath = "./data/feedback.db"

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *logrus.Logger
	SignatureService services.SignatureService
	QuoteService     services.QuoteService
	FeedbackService  services.FeedbackService
	OrderService     services.OrderService

	// Internal dependencies
	services     *services.ServiceContainer
	feedbackRepo repositories.FeedbackRepository
	db           *database.ConnectionManager
	storeErr     error
}

// NewContainer creates a new dependency injection container. A feedback
// store or webhook that cannot be set up is logged and reported by
// HealthCheck; the endpoints that need it then fail per request while the
// others keep working.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := NewLogger(cfg)
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	repo, err := c.newFeedbackRepository(context.Background())
	if err != nil {
		c.storeErr = err
		logger.WithError(err).WithField("store", cfg.Feedback.Store).Warn("Feedback store unavailable")
		repo = &repositories.UnavailableFeedbackRepository{Err: err}
	}
	c.feedbackRepo = repo

	var poster webhook.Poster
	if cfg.Webhook.IsConfigured() {
		client, err := webhook.NewClient(cfg.Webhook.URL, cfg.Webhook.Token, nil, logger)
		if err != nil {
			logger.WithError(err).Warn("Order webhook URL is invalid")
		} else {
			poster = client
		}
	}

	serviceContainer, err := services.NewServiceContainer(cfg, repo, poster, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	c.services = serviceContainer
	c.SignatureService = serviceContainer.SignatureService
	c.QuoteService = serviceContainer.QuoteService
	c.FeedbackService = serviceContainer.FeedbackService
	c.OrderService = serviceContainer.OrderService

	logger.WithFields(logrus.Fields{
		"environment":    cfg.Environment,
		"mode":           config.GetDeploymentMode(),
		"feedback_store": cfg.Feedback.Store,
	}).Info("Container initialized")

	return c, nil
}

// Services returns the service container
func (c *Container) Services() *services.ServiceContainer {
	return c.services
}

func (c *Container) newFeedbackRepository(ctx context.Context) (repositories.FeedbackRepository, error) {
	fb := c.Config.Feedback

	switch fb.Store {
	case config.StoreSupabase:
		return supabase.NewFeedbackRepository(fb.SupabaseURL, fb.ServiceRoleKey, fb.Table, nil, c.Logger)

	case config.StorePostgres, config.StoreSQLite:
		dsn := fb.DatabaseURL
		if dsn == "" && fb.Store == config.StoreSQLite {
			dsn = defaultSQLitePath
		}

		cm := database.NewConnectionManager(&database.ConnectionConfig{
			Driver:          fb.Store,
			DSN:             dsn,
			MaxOpenConns:    fb.MaxOpenConns,
			MaxIdleConns:    fb.MaxIdleConns,
			ConnMaxLifetime: time.Hour,
			Logger:          c.Logger,
		})
		if err := cm.ConnectWithRetry(ctx, database.DefaultRetryConfig()); err != nil {
			return nil, repositories.ConnectionError("feedback", err)
		}

		// The local sqlite schema is ours to create; the Postgres one is not
		if cm.Driver() == database.DriverSQLite {
			if err := cm.GetMigrationManager().RunMigrations(); err != nil {
				cm.Close()
				return nil, fmt.Errorf("failed to migrate feedback database: %w", err)
			}
		}

		repo, err := sqlstore.NewFeedbackRepository(cm.GetDB(), cm.Driver(), fb.Table, c.Logger)
		if err != nil {
			cm.Close()
			return nil, err
		}
		c.db = cm
		return repo, nil

	default:
		return nil, repositories.NewRepositoryErrorWithMessage("init", "feedback",
			fmt.Sprintf("unknown feedback store %q", fb.Store), repositories.ErrInvalidConfig)
	}
}

// HealthCheck reports the state of each backing service
func (c *Container) HealthCheck() map[string]string {
	status := map[string]string{
		"cloudinary":     StateNotConfigured,
		"order_webhook":  StateNotConfigured,
		"feedback_store": StateHealthy,
	}

	if c.Config.Cloudinary.HasCredentials() {
		status["cloudinary"] = StateHealthy
	}
	if c.Config.Webhook.IsConfigured() {
		status["order_webhook"] = StateHealthy
	}

	switch {
	case c.storeErr != nil && errors.Is(c.storeErr, repositories.ErrInvalidConfig):
		status["feedback_store"] = StateNotConfigured
	case c.storeErr != nil:
		status["feedback_store"] = StateUnhealthy
	case c.db != nil:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.db.HealthCheck(ctx); err != nil {
			c.Logger.WithError(err).Warn("Feedback database health check failed")
			status["feedback_store"] = StateUnhealthy
		}
	}

	return status
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.feedbackRepo != nil {
		if err := c.feedbackRepo.Close(); err != nil {
			return fmt.Errorf("failed to close feedback store: %w", err)
		}
		// the repository owned the *sql.DB
		c.db = nil
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

// NewLogger builds the application logger. Serverless and production runs
// log JSON; local runs log text.
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.IsServerlessMode() || cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
