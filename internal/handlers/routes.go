package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"puzzle-landing-api/internal/middleware"
	"puzzle-landing-api/internal/models"
	"puzzle-landing-api/internal/services"
	"puzzle-landing-api/pkg/lambda"
)

// MaxRequestBody caps request bodies on the HTTP server (1MB)
const MaxRequestBody = 1 << 20

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Services *services.ServiceContainer
	Logger   *logrus.Logger
	Version  string
	Mode     string

	// HealthCheck reports the state of each backing service by name
	HealthCheck func() map[string]string
}

// Handlers holds one handler per endpoint
type Handlers struct {
	Signature *SignatureHandler
	Quote     *QuoteHandler
	Feedback  *FeedbackHandler
	Order     *OrderHandler
}

// NewHandlers creates all endpoint handlers from the service container
func NewHandlers(svc *services.ServiceContainer, logger *logrus.Logger) *Handlers {
	return &Handlers{
		Signature: NewSignatureHandler(svc.SignatureService, logger),
		Quote:     NewQuoteHandler(svc.QuoteService, logger),
		Feedback:  NewFeedbackHandler(svc.FeedbackService, logger),
		Order:     NewOrderHandler(svc.OrderService, logger),
	}
}

// SetupRoutes configures all API routes. Endpoints accept every method so
// each handler answers wrong verbs itself.
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	h := NewHandlers(config.Services, config.Logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		health := models.HealthCheck{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Version:   config.Version,
			Mode:      config.Mode,
			Services:  map[string]string{},
		}
		if config.HealthCheck != nil {
			health.Services = config.HealthCheck()
		}
		for _, state := range health.Services {
			if state != "healthy" && state != "not_configured" {
				health.Status = "degraded"
			}
		}
		c.JSON(http.StatusOK, health)
	})

	api := router.Group("/api")
	{
		api.Any("/sign-upload", lambda.GinHandler(h.Signature.Handle))
		api.Any("/quote", lambda.GinHandler(h.Quote.Handle))
		api.Any("/feedback", lambda.GinHandler(h.Feedback.Handle))
		api.Any("/order-submit", lambda.GinHandler(h.Order.Handle))
	}

	// Paths the landing page already calls
	functions := router.Group("/.netlify/functions")
	{
		functions.Any("/cloudinary-sign", lambda.GinHandler(h.Signature.Handle))
		functions.Any("/quote", lambda.GinHandler(h.Quote.Handle))
		functions.Any("/submitFeedback", lambda.GinHandler(h.Feedback.Handle))
		functions.Any("/submit", lambda.GinHandler(h.Order.Handle))
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger) {
	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Request size limit
	router.Use(middleware.RequestSizeLimit(MaxRequestBody))

	// Structured logging
	router.Use(middleware.StructuredLogger(logger))

	// Performance monitoring (log requests over 5 seconds)
	router.Use(middleware.PerformanceMonitor(logger, 5*time.Second))
}
