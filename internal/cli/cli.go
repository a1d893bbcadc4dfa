// Package cli holds the plumbing shared by the command entry points.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/basel-ax/imagegen/internal/infrastructure/openai"
	"github.com/basel-ax/imagegen/internal/logging"
)

// Env is what a command needs from the outside world.
type Env struct {
	Stdout     io.Writer
	Stderr     io.Writer
	LoadConfig func() (*config.Config, error)
	// HTTPClient is optional; nil uses the transport defaults.
	HTTPClient *http.Client
}

// Setup loads configuration, builds the logger and the API client.
func Setup(env Env, verbose bool) (*config.Config, *zap.Logger, *openai.Client, error) {
	cfg, err := env.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	client, err := openai.NewClient(cfg.OpenAIAPIKey,
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithHTTPClient(env.HTTPClient),
		openai.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, client, nil
}

// Fail reports err on w and returns the exit code for its category.
func Fail(w io.Writer, err error) int {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(w, apiErr.Error())
	} else {
		fmt.Fprintf(w, "ERROR: %v\n", err)
	}
	return domain.ExitCode(err)
}
