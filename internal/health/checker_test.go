package health

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/ai-visibility/backend/internal/config"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func configuredConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.Provider = config.ProviderOpenAI
	cfg.LLM.OpenAIKey = "sk-test"
	cfg.DataForSEO.Login = "login"
	cfg.DataForSEO.Password = "password"
	return cfg
}

func TestCheckAll_Healthy(t *testing.T) {
	h := NewHealthChecker(configuredConfig(), fakePinger{}, logrus.New())

	overall := h.CheckAll(context.Background())
	assert.Equal(t, StatusHealthy, overall.Status)
	require.Len(t, overall.Services, 3)
	assert.Equal(t, "redis", overall.Services[0].Name)
	assert.Equal(t, "llm:openai", overall.Services[1].Name)
}

func TestCheckAll_CacheDisabledAndMissingCredentials(t *testing.T) {
	cfg := configuredConfig()
	cfg.DataForSEO.Password = ""
	h := NewHealthChecker(cfg, nil, logrus.New())

	overall := h.CheckAll(context.Background())
	assert.Equal(t, StatusDegraded, overall.Status)
	assert.Equal(t, StatusDisabled, overall.Services[0].Status)
	assert.Equal(t, StatusDegraded, overall.Services[2].Status)
	assert.Contains(t, overall.Services[2].Error, "DATAFORSEO_LOGIN")
}

func TestCheckAll_RedisDown(t *testing.T) {
	h := NewHealthChecker(configuredConfig(), fakePinger{err: errors.New("connection refused")}, logrus.New())

	overall := h.CheckAll(context.Background())
	assert.Equal(t, StatusUnhealthy, overall.Status)
	assert.Equal(t, "connection refused", overall.Services[0].Error)
}
