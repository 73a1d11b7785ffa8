// Package api wires the HTTP routes.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/brandlens/ai-visibility/backend/internal/api/handlers"
	"github.com/brandlens/ai-visibility/backend/internal/middleware"
)

type RouterConfig struct {
	Report      *handlers.ReportHandler
	Health      *handlers.HealthHandler
	RateLimiter *middleware.RateLimiter
	AllowOrigin string
	Logger      *logrus.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Recovery(cfg.Logger, handlers.ReportFailureMessage),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.AllowOrigin),
	)

	if cfg.Health != nil {
		router.GET("/health", cfg.Health.HandleHealth)
	}

	apiGroup := router.Group("/api")
	if cfg.RateLimiter != nil {
		apiGroup.Use(cfg.RateLimiter.RateLimit())
	}
	apiGroup.POST("/report", cfg.Report.HandleReport)

	return router
}
