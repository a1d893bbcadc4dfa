package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/basel-ax/imagegen/internal/cli"
	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/basel-ax/imagegen/internal/repository"
	"github.com/basel-ax/imagegen/internal/service"
)

const (
	model   = "gpt-image-1"
	quality = "high"
)

type options struct {
	prompt     string
	filename   string
	resolution string
	inputs     inputList
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := cli.Env{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: config.Load,
	}
	code := run(ctx, os.Args[1:], env)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, env cli.Env) (*options, error) {
	fs := flag.NewFlagSet("genimage", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)

	opts := &options{}
	fs.StringVar(&opts.prompt, "prompt", "", "Image prompt text (required)")
	fs.StringVar(&opts.filename, "filename", "", "Output file path (required)")
	fs.StringVar(&opts.resolution, "resolution", "1K", "Resolution: 1K, 2K or 4K")
	fs.Var(&opts.inputs, "i", "Input image for editing/composition (repeatable, not supported)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, domain.NewConfigError("unexpected arguments: %v", fs.Args())
	}
	if strings.TrimSpace(opts.prompt) == "" {
		return nil, domain.NewConfigError("--prompt is required")
	}
	if strings.TrimSpace(opts.filename) == "" {
		return nil, domain.NewConfigError("--filename is required")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, env cli.Env) int {
	opts, err := parseFlags(args, env)
	if errors.Is(err, flag.ErrHelp) {
		return domain.ExitOK
	}
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			return cli.Fail(env.Stderr, err)
		}
		return domain.ExitConfig
	}

	if len(opts.inputs) > 0 {
		fmt.Fprintln(env.Stderr, "WARNING: edit/composition inputs are not supported in this build; ignoring -i")
	}

	_, logger, client, err := cli.Setup(env, opts.verbose)
	if err != nil {
		return cli.Fail(env.Stderr, err)
	}
	defer logger.Sync() //nolint:errcheck

	req := domain.ImageGenerationRequest{
		Model:   model,
		Prompt:  opts.prompt,
		Count:   1,
		Size:    sizeForResolution(opts.resolution),
		Quality: quality,
	}

	outPath := cli.ExpandHome(opts.filename)
	repo := repository.NewFileImageRepository(filepath.Dir(outPath), logger)
	svc := service.NewImageGenerationService(client, domain.SinglePolicy, service.WithLogger(logger))

	path, err := svc.GenerateToFile(ctx, req, repo, filepath.Base(outPath))
	if err != nil {
		logger.Debug("generation failed", zap.Error(err))
		return cli.Fail(env.Stderr, err)
	}

	fmt.Fprintf(env.Stdout, "MEDIA: %s\n", path)
	fmt.Fprintf(env.Stdout, "Image saved as: %s\n", path)
	return domain.ExitOK
}
