package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/basel-ax/imagegen/internal/domain"
)

const (
	// DefaultBaseURL is the OpenAI API root used when OPENAI_BASE_URL is unset.
	DefaultBaseURL = "https://api.openai.com"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Config holds all configuration for the application
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	PromptsFile   string
	Log           LogConfig
}

// Load loads the configuration from environment variables, reading .env first when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return LoadFrom(os.Getenv)
}

// LoadFrom builds the configuration from the given lookup function
func LoadFrom(getenv func(string) string) (*Config, error) {
	config := &Config{
		OpenAIAPIKey:  strings.TrimSpace(getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: strings.TrimRight(strings.TrimSpace(getenv("OPENAI_BASE_URL")), "/"),
		PromptsFile:   strings.TrimSpace(getenv("IMAGEGEN_PROMPTS_FILE")),
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(getenv("IMAGEGEN_LOG_LEVEL"))),
			Format: strings.ToLower(strings.TrimSpace(getenv("IMAGEGEN_LOG_FORMAT"))),
		},
	}

	if config.OpenAIBaseURL == "" {
		config.OpenAIBaseURL = DefaultBaseURL // default value
	}
	if config.Log.Level == "" {
		config.Log.Level = "info" // default value
	}
	if config.Log.Format == "" {
		config.Log.Format = "console" // default value
	}

	// Validate required fields
	if config.OpenAIAPIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	switch config.Log.Format {
	case "console", "json":
	default:
		return nil, domain.NewConfigError("IMAGEGEN_LOG_FORMAT must be console or json, got %q", config.Log.Format)
	}

	return config, nil
}
