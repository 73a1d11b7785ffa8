package health

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandlens/ai-visibility/backend/internal/config"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports on the cache connection and on provider
// configuration. Provider APIs are never called: each call is billed.
type HealthChecker struct {
	cfg    *config.Config
	cache  Pinger
	logger *logrus.Logger
}

// NewHealthChecker accepts a nil cache when caching is disabled
func NewHealthChecker(cfg *config.Config, cache Pinger, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{cfg: cfg, cache: cache, logger: logger}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Service  string          `json:"service"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckRedis checks Redis cache health
func (h *HealthChecker) CheckRedis(ctx context.Context) ServiceHealth {
	if h.cache == nil {
		return ServiceHealth{Name: "redis", Status: StatusDisabled, LastChecked: time.Now().Format(time.RFC3339)}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := h.cache.Ping(ctx)
	responseTime := int(time.Since(start).Milliseconds())

	status := StatusHealthy
	errorMsg := ""
	if err != nil {
		status = StatusUnhealthy
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Redis health check failed")
	}

	return ServiceHealth{
		Name:         "redis",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckProviders reports whether each upstream has credentials configured
func (h *HealthChecker) CheckProviders() []ServiceHealth {
	return []ServiceHealth{
		configured("llm:"+h.cfg.LLM.Provider, h.cfg.ValidateLLM()),
		configured("dataforseo", h.cfg.ValidateDataForSEO()),
	}
}

func configured(name string, err error) ServiceHealth {
	service := ServiceHealth{Name: name, Status: StatusHealthy, LastChecked: time.Now().Format(time.RFC3339)}
	if err != nil {
		service.Status = StatusDegraded
		service.Error = err.Error()
	}
	return service
}

// CheckAll performs health checks on all services
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	services := append([]ServiceHealth{h.CheckRedis(ctx)}, h.CheckProviders()...)

	overallStatus := StatusHealthy
	for _, service := range services {
		if service.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			break
		}
		if service.Status == StatusDegraded && overallStatus == StatusHealthy {
			overallStatus = StatusDegraded
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Service:  "ai-visibility-backend",
		Services: services,
		Uptime:   h.getUptime(),
	}
}

var startTime = time.Now()

func (h *HealthChecker) getUptime() string {
	return time.Since(startTime).Round(time.Second).String()
}
