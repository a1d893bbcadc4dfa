package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/basel-ax/imagegen/internal/repository"
)

const defaultExtension = "png"

// ImageGenerationService runs the generate → decode → persist pipeline
type ImageGenerationService struct {
	client domain.ImageGenerator
	policy domain.ValidationPolicy
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes the service
type Option func(*ImageGenerationService)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *ImageGenerationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the clock used for file name timestamps
func WithClock(now func() time.Time) Option {
	return func(s *ImageGenerationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewImageGenerationService creates a new image generation service
func NewImageGenerationService(client domain.ImageGenerator, policy domain.ValidationPolicy, opts ...Option) *ImageGenerationService {
	s := &ImageGenerationService{
		client: client,
		policy: policy,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GalleryResult describes a finished gallery run
type GalleryResult struct {
	Prompt string
	Files  []string
}

// GenerateImages validates the request and performs the one API call
func (s *ImageGenerationService) GenerateImages(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	if err := req.Validate(s.policy); err != nil {
		return nil, err
	}

	s.logger.Info("generating images",
		zap.String("policy", s.policy.Name),
		zap.String("model", req.Model),
		zap.Stringer("family", domain.FamilyOf(req.Model)),
		zap.Int("count", req.Count),
		zap.String("size", req.Size))

	resp, err := s.client.GenerateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate images: %w", err)
	}
	return resp, nil
}

// GenerateGallery generates images and writes them, the prompts.json sidecar and
// the index.html gallery through repo. Nothing is written when no entry decodes.
func (s *ImageGenerationService) GenerateGallery(ctx context.Context, req domain.ImageGenerationRequest, repo repository.ImageRepository) (*GalleryResult, error) {
	resp, err := s.GenerateImages(ctx, req)
	if err != nil {
		return nil, err
	}

	images, err := DecodeImages(resp, s.logger)
	if err != nil {
		return nil, err
	}

	if extra := len(images) - req.Count; extra > 0 {
		s.logger.Warn("response carried more images than requested, dropping the rest",
			zap.Int("requested", req.Count),
			zap.Int("dropped", extra))
		images = images[:req.Count]
	}

	ts := s.now()
	ext := Extension(req)
	files := make([]string, 0, len(images))
	for _, img := range images {
		path, err := repo.SaveImage(ctx, repository.ImageFileName(ts, img.Index, ext), img.Bytes)
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}

	if err := repo.SaveRecord(ctx, domain.GenerationRecord{Prompt: req.Prompt, Files: files}); err != nil {
		return nil, err
	}
	if err := repo.SaveIndex(ctx, files); err != nil {
		return nil, err
	}

	return &GalleryResult{Prompt: req.Prompt, Files: files}, nil
}

// GenerateToFile generates one image and writes the first response entry under name.
// The first entry must carry a usable payload; any later entries are ignored.
func (s *ImageGenerationService) GenerateToFile(ctx context.Context, req domain.ImageGenerationRequest, repo repository.ImageRepository, name string) (string, error) {
	resp, err := s.GenerateImages(ctx, req)
	if err != nil {
		return "", err
	}

	images, err := DecodeImages(resp, s.logger)
	if err != nil {
		return "", err
	}
	if images[0].Index != 1 {
		return "", domain.ErrEmptyResult
	}
	if len(resp.Data) > 1 {
		s.logger.Warn("response carried more images than requested, keeping the first",
			zap.Int("entries", len(resp.Data)))
	}

	return repo.SaveImage(ctx, name, images[0].Bytes)
}

// DecodeImages decodes response entries in order. Entries without a payload or
// with an undecodable one are skipped; none usable yields domain.ErrEmptyResult.
func DecodeImages(resp *domain.ImageGenerationResponse, logger *zap.Logger) ([]domain.GeneratedImage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, domain.ErrEmptyResult
	}

	images := make([]domain.GeneratedImage, 0, len(resp.Data))
	for i, d := range resp.Data {
		if d.B64JSON == "" {
			logger.Warn("skipping image entry without payload", zap.Int("index", i+1))
			continue
		}
		data, err := decodeBase64(d.B64JSON)
		if err != nil {
			logger.Warn("skipping undecodable image entry", zap.Int("index", i+1), zap.Error(err))
			continue
		}
		images = append(images, domain.GeneratedImage{Index: i + 1, Bytes: data})
	}

	if len(images) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return images, nil
}

// Extension returns the file extension for images produced by req.
func Extension(req domain.ImageGenerationRequest) string {
	if req.OutputFormat != "" && domain.FamilyOf(req.Model).Rules().AllowOutputFormat {
		return req.OutputFormat
	}
	return defaultExtension
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(s)
}
