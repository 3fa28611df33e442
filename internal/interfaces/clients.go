// Package interfaces defines service contracts for Chartproof
package interfaces

import (
	"context"

	"github.com/chartproof/chartproof/internal/models"
)

// ImagePart is inline image data passed to structured generation.
type ImagePart struct {
	Data     []byte
	MimeType string
}

// GroundedResponse is the outcome of search-augmented generation: free text
// plus best-effort web citations. An empty source list is valid.
type GroundedResponse struct {
	Text    string
	Sources []models.Source
}

// GenerateSettings control a single structured-generation call.
type GenerateSettings struct {
	VisionModel bool
}

// GenerateOption adjusts settings for one call.
type GenerateOption func(*GenerateSettings)

// WithVisionModel routes the call to the cheaper vision-tier model. Used for
// lightweight image checks; strategy analysis stays on the main model.
func WithVisionModel() GenerateOption {
	return func(s *GenerateSettings) {
		s.VisionModel = true
	}
}

// BuildGenerateSettings resolves options into settings.
func BuildGenerateSettings(opts []GenerateOption) GenerateSettings {
	settings := GenerateSettings{}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// GeminiClient provides access to the generative inference provider.
// Two distinct capabilities: strict-JSON structured generation and
// search-grounded free-text generation. They are different tool modes in the
// underlying API and cannot be collapsed into one call.
type GeminiClient interface {
	// GenerateStructured generates JSON text from an optional inline image
	// plus prompts. Empty or missing output is an error, never an empty result.
	// Options select the model tier for the call.
	GenerateStructured(ctx context.Context, systemPrompt, userPrompt string, image *ImagePart, opts ...GenerateOption) (string, error)

	// GenerateGrounded generates free text augmented with live web search.
	GenerateGrounded(ctx context.Context, prompt string) (*GroundedResponse, error)

	// Configured reports whether an API credential is available.
	Configured() bool
}
