package domain

import (
	"context"
	"strings"
	"time"
)

// ImageGenerationRequest represents the parameters for image generation
type ImageGenerationRequest struct {
	Model        string
	Prompt       string
	Count        int
	Size         string
	Quality      string
	Style        string
	Background   string
	OutputFormat string
}

// ImageData is a single entry of the provider response, in response order
type ImageData struct {
	B64JSON       string
	RevisedPrompt string
}

// ImageGenerationResponse represents the response from the image generation service
type ImageGenerationResponse struct {
	Created time.Time
	Data    []ImageData
}

// ImageGenerator defines the interface for image generation operations
type ImageGenerator interface {
	// GenerateImages performs one generation call for the request
	GenerateImages(ctx context.Context, req ImageGenerationRequest) (*ImageGenerationResponse, error)
}

// ValidationPolicy is a named set of pre-flight rules applied before any network call.
type ValidationPolicy struct {
	Name string
	// EnforceFamilyCount rejects counts above the model family's MaxCount.
	EnforceFamilyCount bool
}

var (
	// GalleryPolicy is used by the multi-image gallery command.
	GalleryPolicy = ValidationPolicy{Name: "gallery", EnforceFamilyCount: true}
	// SinglePolicy is used by the single-image command, which never checks the family count.
	SinglePolicy = ValidationPolicy{Name: "single"}
)

// Validate checks the request against the policy
func (r ImageGenerationRequest) Validate(policy ValidationPolicy) error {
	if strings.TrimSpace(r.Model) == "" {
		return NewConfigError("model is required")
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return NewConfigError("prompt is required")
	}
	if r.Count < 1 {
		return NewConfigError("count must be >= 1")
	}
	if policy.EnforceFamilyCount {
		family := FamilyOf(r.Model)
		if limit := family.Rules().MaxCount; limit > 0 && r.Count > limit {
			if limit == 1 {
				return NewConfigError("%s only supports count 1", family)
			}
			return NewConfigError("%s supports at most count %d", family, limit)
		}
	}
	return nil
}
