package domain

import (
	"errors"
	"fmt"
)

// Process exit codes, one per error category.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitUpstream = 3
	ExitEmpty    = 4
)

// ConfigError is a local misconfiguration detected before any network call.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewConfigError formats a ConfigError
func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ErrMissingAPIKey is returned when no credential is configured.
var ErrMissingAPIKey = &ConfigError{Message: "OPENAI_API_KEY is not set"}

// ErrEmptyResult is returned when a well-formed response carries no usable image.
var ErrEmptyResult = errors.New("no image data returned")

// APIError is a non-success HTTP response from the image API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAI API error: %d %s\n%s", e.StatusCode, e.Status, e.Body)
}

// ExitCode maps an error to the process exit code for its category
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *ConfigError
	var apiErr *APIError
	switch {
	case errors.As(err, &cfgErr):
		return ExitConfig
	case errors.As(err, &apiErr):
		return ExitUpstream
	case errors.Is(err, ErrEmptyResult):
		return ExitEmpty
	default:
		return ExitFailure
	}
}
