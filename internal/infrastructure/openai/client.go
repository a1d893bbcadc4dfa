package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/basel-ax/imagegen/internal/domain"
)

const (
	defaultBaseURL  = "https://api.openai.com"
	generationsPath = "/v1/images/generations"
)

// Client represents the OpenAI Images API client
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. to point at a proxy or test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new OpenAI Images API client. The key is required.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenerateImages sends one generation request and returns the decoded envelope.
// Requests failing the basic checks of domain.SinglePolicy never reach the network.
func (c *Client) GenerateImages(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	payload, err := NewImagesRequest(req, domain.SinglePolicy)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generationsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending image generation request",
		zap.String("model", payload.Model),
		zap.Int("n", payload.N),
		zap.String("size", payload.Size))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.APIError{
			StatusCode: resp.StatusCode,
			Status:     statusReason(resp),
			Body:       string(raw),
		}
	}

	if err := validateEnvelope(raw); err != nil {
		return nil, err
	}

	var result imagesResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := &domain.ImageGenerationResponse{
		Data: make([]domain.ImageData, 0, len(result.Data)),
	}
	if result.Created > 0 {
		out.Created = time.Unix(result.Created, 0)
	}
	for _, d := range result.Data {
		out.Data = append(out.Data, domain.ImageData{
			B64JSON:       d.B64JSON,
			RevisedPrompt: d.RevisedPrompt,
		})
	}

	c.logger.Debug("received image generation response", zap.Int("entries", len(out.Data)))
	return out, nil
}

// statusReason strips the numeric code from resp.Status, leaving e.g. "Bad Request".
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

var _ domain.ImageGenerator = (*Client)(nil)
