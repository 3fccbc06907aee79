// Package config provides environment-driven configuration for the
// trial-matching service. Variables use the TRIALS_ prefix.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Upstream trial registry (ClinicalTrials.gov v2)
	RegistryBaseURL  string        `envconfig:"REGISTRY_BASE_URL" default:"https://clinicaltrials.gov/api/v2"`
	RegistryTimeout  time.Duration `envconfig:"REGISTRY_TIMEOUT" default:"10s"`
	RateLimitPerHour int           `envconfig:"RATE_LIMIT_PER_HOUR" default:"1000"`
	CacheTTL         time.Duration `envconfig:"CACHE_TTL" default:"1h"`

	// Search-event logging sink; empty path disables it entirely.
	EventLogPath string `envconfig:"EVENT_LOG_PATH" default:""`

	// Text-generation providers, tried in order. Any of them may be
	// left unconfigured.
	OllamaURL       string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OllamaModel     string `envconfig:"OLLAMA_MODEL" default:"mistral"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicModel  string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-haiku-latest"`
	HFAPIURL        string `envconfig:"HF_API_URL" default:"https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.2"`
	HFAPIKey        string `envconfig:"HF_API_KEY" default:""`
}

// Load parses configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("TRIALS", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.RegistryBaseURL == "" {
		return fmt.Errorf("REGISTRY_BASE_URL cannot be empty")
	}
	if c.RateLimitPerHour <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_HOUR must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}
