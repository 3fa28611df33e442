// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultVisionModel = "gemini-2.5-flash-lite"
	DefaultTimeout     = 45 * time.Second
	DefaultRateLimit   = 5 // requests per second
)

// Client implements the GeminiClient interface. When constructed without an
// API key the client is usable but every call fails with ErrNotConfigured;
// a missing credential must not crash the process.
type Client struct {
	client      *genai.Client
	model       string
	visionModel string
	timeout     time.Duration
	limiter     *rate.Limiter
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model used for structured and grounded generation
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithVisionModel sets the model used for image validation calls
func WithVisionModel(model string) ClientOption {
	return func(c *Client) {
		c.visionModel = model
	}
}

// WithTimeout sets the per-call timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRateLimit sets the client-side request rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client. apiKey may be empty, in which case
// calls fail at invocation time with ErrNotConfigured.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		model:       DefaultModel,
		visionModel: DefaultVisionModel,
		timeout:     DefaultTimeout,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:      common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if apiKey == "" {
		return c, nil
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = genaiClient

	return c, nil
}

// Configured reports whether an API credential is available.
func (c *Client) Configured() bool {
	return c.client != nil
}

// GenerateStructured generates strict-JSON output from an optional inline
// image plus prompts. Empty output is treated as a failure, never as a valid
// empty result. The vision-tier model is an explicit per-call choice, not
// implied by the presence of an image: validation runs on the cheap tier
// while strategy analysis keeps the main model.
func (c *Client) GenerateStructured(ctx context.Context, systemPrompt, userPrompt string, image *interfaces.ImagePart, opts ...interfaces.GenerateOption) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.model
	if interfaces.BuildGenerateSettings(opts).VisionModel {
		model = c.visionModel
	}
	parts := []*genai.Part{}
	if image != nil {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MimeType))
	}
	parts = append(parts, genai.NewPartFromText(userPrompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	c.logger.Debug().Str("model", model).Bool("image", image != nil).Msg("Generating structured content")

	result, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("structured generation failed: %w", err)
	}

	return extractTextFromResponse(result)
}

// GenerateGrounded generates free text augmented with Google Search and
// collects web citations from the grounding metadata. Sources are
// best-effort; an empty list is valid.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string) (*interfaces.GroundedResponse, error) {
	if c.client == nil {
		return nil, ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := genai.Text(prompt)
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	c.logger.Debug().Str("model", c.model).Msg("Generating search-grounded content")

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("grounded generation failed: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return &interfaces.GroundedResponse{
		Text:    text,
		Sources: extractSources(result),
	}, nil
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("no content generated")
	}

	return text, nil
}

// extractSources pulls web citations out of the grounding metadata.
func extractSources(result *genai.GenerateContentResponse) []models.Source {
	sources := []models.Source{}
	if len(result.Candidates) == 0 || result.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range result.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Source"
		}
		sources = append(sources, models.Source{Title: title, URI: chunk.Web.URI})
	}
	return sources
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
