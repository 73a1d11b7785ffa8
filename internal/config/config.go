package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port      string
		RateLimit int
	}
	Report struct {
		Timeout time.Duration
	}
	LLM struct {
		Provider     string
		Model        string
		BaseURL      string
		Temperature  float32
		Timeout      time.Duration
		OpenAIKey    string
		GeminiAPIKey string
	}
	DataForSEO struct {
		BaseURL  string
		Login    string
		Password string
		Timeout  time.Duration
		RPM      int
	}
	Search struct {
		Location    string
		Language    string
		Depth       int
		Parallelism int
	}
	Redis struct {
		URL string
	}
	Cache struct {
		Enabled bool
		TTL     time.Duration
	}
	Probe struct {
		Enabled bool
		Timeout time.Duration
	}
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Load reads config.yaml from the working directory when present and lets
// environment variables override any key (server.port -> SERVER_PORT).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config

	config.Server.Port = v.GetString("server.port")
	config.Server.RateLimit = v.GetInt("server.rate_limit")
	config.Report.Timeout = v.GetDuration("report.timeout")

	config.LLM.Provider = strings.ToLower(v.GetString("llm.provider"))
	config.LLM.Model = v.GetString("llm.model")
	config.LLM.BaseURL = v.GetString("llm.base_url")
	config.LLM.Temperature = float32(v.GetFloat64("llm.temperature"))
	config.LLM.Timeout = v.GetDuration("llm.timeout")
	config.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	config.LLM.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	config.DataForSEO.BaseURL = v.GetString("dataforseo.base_url")
	config.DataForSEO.Login = os.Getenv("DATAFORSEO_LOGIN")
	config.DataForSEO.Password = os.Getenv("DATAFORSEO_PASSWORD")
	config.DataForSEO.Timeout = v.GetDuration("dataforseo.timeout")
	config.DataForSEO.RPM = v.GetInt("dataforseo.rpm")

	config.Search.Location = v.GetString("search.location")
	config.Search.Language = v.GetString("search.language")
	config.Search.Depth = v.GetInt("search.depth")
	config.Search.Parallelism = v.GetInt("search.parallelism")

	config.Redis.URL = v.GetString("redis.url")
	config.Cache.Enabled = v.GetBool("cache.enabled")
	config.Cache.TTL = v.GetDuration("cache.ttl")

	config.Probe.Enabled = v.GetBool("probe.enabled")
	config.Probe.Timeout = v.GetDuration("probe.timeout")

	if config.Search.Parallelism < 1 {
		config.Search.Parallelism = 1
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("report.timeout", 3*time.Minute)

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.timeout", 90*time.Second)

	v.SetDefault("dataforseo.base_url", "https://api.dataforseo.com")
	v.SetDefault("dataforseo.timeout", 60*time.Second)
	v.SetDefault("dataforseo.rpm", 120)

	v.SetDefault("search.location", "India")
	v.SetDefault("search.language", "English")
	v.SetDefault("search.depth", 10)
	v.SetDefault("search.parallelism", 1)

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("probe.enabled", false)
	v.SetDefault("probe.timeout", 10*time.Second)
}

// ValidateLLM reports a missing key for the selected provider
func (c *Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the %s provider", ProviderOpenAI)
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the %s provider", ProviderGemini)
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}

func (c *Config) ValidateDataForSEO() error {
	if c.DataForSEO.Login == "" || c.DataForSEO.Password == "" {
		return fmt.Errorf("DATAFORSEO_LOGIN and DATAFORSEO_PASSWORD are required")
	}
	return nil
}

// ValidateProviders lists the credentials that are missing. A report can
// still be produced without them, only with default values.
func (c *Config) ValidateProviders() []error {
	var problems []error
	if err := c.ValidateLLM(); err != nil {
		problems = append(problems, err)
	}
	if err := c.ValidateDataForSEO(); err != nil {
		problems = append(problems, err)
	}
	return problems
}
