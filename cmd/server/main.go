package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/brandlens/ai-visibility/backend/internal/api"
	"github.com/brandlens/ai-visibility/backend/internal/api/handlers"
	"github.com/brandlens/ai-visibility/backend/internal/app"
	"github.com/brandlens/ai-visibility/backend/internal/config"
	"github.com/brandlens/ai-visibility/backend/internal/health"
	"github.com/brandlens/ai-visibility/backend/internal/middleware"
	"github.com/brandlens/ai-visibility/backend/pkg/utils"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	components := app.Build(ctx, cfg, logger)
	defer components.Close()

	var pinger health.Pinger
	if components.Cache != nil {
		pinger = components.Cache
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit)
	defer rateLimiter.Stop()

	router := api.NewRouter(api.RouterConfig{
		Report:      handlers.NewReportHandler(components.Assembler, cfg.Report.Timeout, logger),
		Health:      handlers.NewHealthHandler(health.NewHealthChecker(cfg, pinger, logger)),
		RateLimiter: rateLimiter,
		AllowOrigin: os.Getenv("CORS_ALLOW_ORIGIN"),
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Report.Timeout + 15*time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}
