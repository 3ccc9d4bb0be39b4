// Package config loads the Azure OpenAI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultAPIVersion is the Azure OpenAI REST API version used when none is configured.
const DefaultAPIVersion = "2023-05-15"

// ErrMissing is returned by Load when a required variable is unset or empty.
var ErrMissing = errors.New("missing required configuration")

// Config holds everything needed to reach the embedding and chat deployments.
type Config struct {
	Endpoint            string        `envconfig:"AZURE_OPENAI_ENDPOINT"`
	APIKey              string        `envconfig:"AZURE_OPENAI_API_KEY"`
	EmbeddingDeployment string        `envconfig:"EMBEDDING_DEPLOYMENT"`
	ChatDeployment      string        `envconfig:"LLM_DEPLOYMENT"`
	APIVersion          string        `envconfig:"AZURE_OPENAI_API_VERSION"`
	RequestTimeout      time.Duration `envconfig:"RAGQA_REQUEST_TIMEOUT"`
}

// Load reads .env (if present) into the process environment and then decodes
// the configuration. Values already present in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv decodes the configuration from the process environment only.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every required variable that is missing or blank.
func (c Config) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"AZURE_OPENAI_ENDPOINT", c.Endpoint},
		{"AZURE_OPENAI_API_KEY", c.APIKey},
		{"EMBEDDING_DEPLOYMENT", c.EmbeddingDeployment},
		{"LLM_DEPLOYMENT", c.ChatDeployment},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (set them in the environment or a .env file)", ErrMissing, strings.Join(missing, ", "))
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("RAGQA_REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "****"
	}
	return c
}
