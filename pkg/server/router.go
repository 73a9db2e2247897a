package server

import (
	"github.com/gin-gonic/gin"

	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/handlers"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// NewRouter builds the gin engine serving every endpoint of the container
func NewRouter(c *Container) *gin.Engine {
	if c.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handlers.SetupMiddleware(router, c.Logger)
	handlers.SetupRoutes(router, &handlers.RouterConfig{
		Services:    c.Services(),
		Logger:      c.Logger,
		Version:     Version,
		Mode:        config.GetDeploymentMode(),
		HealthCheck: c.HealthCheck,
	})

	return router
}
