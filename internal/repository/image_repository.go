package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basel-ax/imagegen/internal/domain"
)

const (
	// RecordFileName is the sidecar written next to a batch of images.
	RecordFileName = "prompts.json"
	// IndexFileName is the HTML gallery written next to a batch of images.
	IndexFileName = "index.html"

	timestampLayout = "20060102_150405"
)

// ImageRepository defines the interface for image data access
type ImageRepository interface {
	SaveImage(ctx context.Context, name string, data []byte) (string, error)
	SaveRecord(ctx context.Context, record domain.GenerationRecord) error
	SaveIndex(ctx context.Context, files []string) error
}

// FileImageRepository implements ImageRepository on a local directory
type FileImageRepository struct {
	dir    string
	logger *zap.Logger
}

// NewFileImageRepository creates a repository rooted at dir. The directory is created on first write.
func NewFileImageRepository(dir string, logger *zap.Logger) *FileImageRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileImageRepository{dir: dir, logger: logger}
}

// ImageFileName returns the name for the image at 1-based response position index.
func ImageFileName(ts time.Time, index int, ext string) string {
	return fmt.Sprintf("image_%s_%d.%s", ts.Format(timestampLayout), index, ext)
}

// SaveImage writes data under name and returns the written path
func (r *FileImageRepository) SaveImage(ctx context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(r.dir, name)
	if err := r.write(ctx, path, data); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", name, err)
	}
	r.logger.Debug("image saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

// SaveRecord writes the prompts.json sidecar
func (r *FileImageRepository) SaveRecord(ctx context.Context, record domain.GenerationRecord) error {
	if record.Files == nil {
		record.Files = []string{}
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := r.write(ctx, filepath.Join(r.dir, RecordFileName), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// SaveIndex writes the index.html gallery referencing files by base name
func (r *FileImageRepository) SaveIndex(ctx context.Context, files []string) error {
	data, err := renderGallery(files)
	if err != nil {
		return fmt.Errorf("failed to render gallery: %w", err)
	}
	if err := r.write(ctx, filepath.Join(r.dir, IndexFileName), data); err != nil {
		return fmt.Errorf("failed to save gallery: %w", err)
	}
	return nil
}

// write creates parents and replaces path atomically through a temp file.
func (r *FileImageRepository) write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, ".tmp-"+filepath.Base(path)+"-"+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

var _ ImageRepository = (*FileImageRepository)(nil)
