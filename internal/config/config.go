package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the agent service.
// Environment variables are parsed from the VOICE_AGENT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Session store. Empty RedisAddr selects the in-memory driver.
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"1h"`

	// Intent classification
	ClassifierStrategy string        `envconfig:"CLASSIFIER_STRATEGY" default:"lexicon"`
	ZeroShotURL        string        `envconfig:"ZEROSHOT_URL" default:""`
	ZeroShotModel      string        `envconfig:"ZEROSHOT_MODEL" default:"MoritzLaurer/bge-m3-zeroshot-v2.0"`
	ZeroShotTimeout    time.Duration `envconfig:"ZEROSHOT_TIMEOUT" default:"10s"`

	// Speech synthesis boundary. Empty URL disables synthesis.
	SynthesisURL     string        `envconfig:"SYNTHESIS_URL" default:""`
	SynthesisTimeout time.Duration `envconfig:"SYNTHESIS_TIMEOUT" default:"15s"`
}

// ResolveDefaults validates derived settings.
func (c *Config) ResolveDefaults() error {
	switch c.ClassifierStrategy {
	case "lexicon":
	case "zeroshot":
		if c.ZeroShotURL == "" {
			return fmt.Errorf("CLASSIFIER_STRATEGY=zeroshot requires ZEROSHOT_URL")
		}
	default:
		return fmt.Errorf("unsupported CLASSIFIER_STRATEGY: %s", c.ClassifierStrategy)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with VOICE_AGENT_
// Example: VOICE_AGENT_HTTP_PORT, VOICE_AGENT_REDIS_ADDR
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("VOICE_AGENT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("classifier_strategy", cfg.ClassifierStrategy).
		Dur("session_ttl", cfg.SessionTTL).
		Str("redis_addr_present", func() string {
			if cfg.RedisAddr != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:        EnvTesting,
		HTTPPort:           8080,
		RedisAddr:          "",
		SessionTTL:         time.Hour,
		ClassifierStrategy: "lexicon",
		ZeroShotModel:      "MoritzLaurer/bge-m3-zeroshot-v2.0",
		ZeroShotTimeout:    10 * time.Second,
		SynthesisTimeout:   15 * time.Second,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
