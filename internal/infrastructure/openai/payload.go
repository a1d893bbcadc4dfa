package openai

import "github.com/basel-ax/imagegen/internal/domain"

const responseFormatB64 = "b64_json"

// BuildPayload maps a request to the wire body. Optional fields the model
// family does not accept are dropped.
func BuildPayload(req domain.ImageGenerationRequest) *ImagesRequest {
	rules := domain.FamilyOf(req.Model).Rules()

	payload := &ImagesRequest{
		Model:          req.Model,
		Prompt:         req.Prompt,
		N:              req.Count,
		Size:           req.Size,
		ResponseFormat: responseFormatB64,
		Quality:        req.Quality,
	}
	if rules.AllowStyle {
		payload.Style = req.Style
	}
	if rules.AllowBackground {
		payload.Background = req.Background
	}
	if rules.AllowOutputFormat {
		payload.OutputFormat = req.OutputFormat
	}
	return payload
}

// NewImagesRequest validates req under policy and builds the payload.
func NewImagesRequest(req domain.ImageGenerationRequest, policy domain.ValidationPolicy) (*ImagesRequest, error) {
	if err := req.Validate(policy); err != nil {
		return nil, err
	}
	return BuildPayload(req), nil
}
