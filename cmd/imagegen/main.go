package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/basel-ax/imagegen/internal/cli"
	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/basel-ax/imagegen/internal/prompts"
	"github.com/basel-ax/imagegen/internal/repository"
	"github.com/basel-ax/imagegen/internal/service"
)

type options struct {
	prompt       string
	count        int
	model        string
	size         string
	quality      string
	outDir       string
	outputFormat string
	background   string
	style        string
	verbose      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := cli.Env{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: config.Load,
	}
	code := run(ctx, os.Args[1:], env, rand.New(rand.NewSource(time.Now().UnixNano())))
	stop()
	os.Exit(code)
}

func parseFlags(args []string, env cli.Env) (*options, error) {
	fs := flag.NewFlagSet("imagegen", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)

	opts := &options{}
	fs.StringVar(&opts.prompt, "prompt", "", "Image prompt text (random default when omitted)")
	fs.IntVar(&opts.count, "count", 1, "Number of images to generate")
	fs.StringVar(&opts.model, "model", "gpt-image-1", "Model identifier")
	fs.StringVar(&opts.size, "size", "1024x1024", "Image size, e.g. 1024x1024 or 1536x1024")
	fs.StringVar(&opts.quality, "quality", "", "Image quality")
	fs.StringVar(&opts.outDir, "out-dir", "./out/images", "Output directory")
	fs.StringVar(&opts.outputFormat, "output-format", "", "Output format for gpt-image models (png, jpeg, webp)")
	fs.StringVar(&opts.background, "background", "", "Background for gpt-image models (transparent, opaque, auto)")
	fs.StringVar(&opts.style, "style", "", "Style for dall-e-3 (vivid, natural)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, domain.NewConfigError("unexpected arguments: %v", fs.Args())
	}
	if opts.count < 1 {
		return nil, domain.NewConfigError("--count must be >= 1")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, env cli.Env, rnd *rand.Rand) int {
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

	cfg, logger, client, err := cli.Setup(env, opts.verbose)
	if err != nil {
		return cli.Fail(env.Stderr, err)
	}
	defer logger.Sync() //nolint:errcheck

	var pool []string
	if cfg.PromptsFile != "" {
		if pool, err = prompts.LoadFile(cfg.PromptsFile); err != nil {
			return cli.Fail(env.Stderr, domain.NewConfigError("%v", err))
		}
	}
	req := domain.ImageGenerationRequest{
		Model:        opts.model,
		Prompt:       prompts.NewPicker(pool, rnd).Resolve(opts.prompt),
		Count:        opts.count,
		Size:         opts.size,
		Quality:      opts.quality,
		Style:        opts.style,
		Background:   opts.background,
		OutputFormat: opts.outputFormat,
	}
	if opts.prompt == "" {
		logger.Info("no prompt given, using a default", zap.String("prompt", req.Prompt))
	}

	outDir := cli.ExpandHome(opts.outDir)
	svc := service.NewImageGenerationService(client, domain.GalleryPolicy, service.WithLogger(logger))
	res, err := svc.GenerateGallery(ctx, req, repository.NewFileImageRepository(outDir, logger))
	if err != nil {
		logger.Debug("generation failed", zap.Error(err))
		return cli.Fail(env.Stderr, err)
	}

	for _, f := range res.Files {
		fmt.Fprintf(env.Stdout, "MEDIA: %s\n", f)
	}
	fmt.Fprintf(env.Stdout, "Saved %d image(s) to %s\n", len(res.Files), outDir)
	return domain.ExitOK
}
