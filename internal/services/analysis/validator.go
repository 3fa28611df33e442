// Package analysis implements the chart analysis pipeline: validation,
// strategy analysis, grounding, and report assembly.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

const validationSystemPrompt = `You are a financial chart validation expert. Your task is to:
1. Determine if this image is a valid financial/trading chart
2. Extract metadata if it's a valid chart

A valid chart must show:
- Price data (candlesticks, bars, or line chart)
- Time axis
- Price axis
- Clear readable data

Respond with JSON in this exact format:
{
  "is_valid_chart": boolean,
  "rejection_reason": string or null,
  "metadata": {
    "ticker": "string (symbol/ticker visible or 'UNKNOWN')",
    "timeframe": "string (e.g., '1H', '4H', 'D', 'W' or 'UNKNOWN')",
    "current_price": number (approximate last visible price, use 0 if unclear),
    "chart_type": "string (candlestick, bar, line, etc.)"
  }
}

If the image is NOT a valid chart, set is_valid_chart to false and provide rejection_reason.
Do not include metadata if the chart is invalid.`

// Validator is the pipeline gate: nothing downstream runs unless the image
// is recognized as a readable financial chart.
type Validator struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewValidator creates a chart validator.
func NewValidator(gemini interfaces.GeminiClient, logger *common.Logger) *Validator {
	return &Validator{gemini: gemini, logger: logger}
}

// Validate checks whether the image is a usable financial chart and extracts
// coarse metadata. Never returns an error: gateway failures produce an
// invalid result whose rejection reason carries the failure text, so callers
// can still distinguish rate-limit failures.
func (v *Validator) Validate(ctx context.Context, image *interfaces.ImagePart) *models.ValidationResult {
	raw, err := v.gemini.GenerateStructured(ctx, validationSystemPrompt,
		"Validate this chart image and extract metadata.", image,
		interfaces.WithVisionModel())
	if err != nil {
		v.logger.Warn().Err(err).Msg("Chart validation call failed")
		return &models.ValidationResult{
			IsValidChart:    false,
			RejectionReason: fmt.Sprintf("Validation error: %v", err),
		}
	}

	result := &models.ValidationResult{}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), result); err != nil {
		v.logger.Warn().Err(err).Msg("Chart validation response unparsable")
		return &models.ValidationResult{
			IsValidChart:    false,
			RejectionReason: "Failed to parse validation response",
		}
	}

	if result.IsValidChart && result.Metadata == nil {
		// Valid verdict without metadata is unusable downstream.
		result.Metadata = &models.ChartMetadata{
			Ticker: "UNKNOWN", Timeframe: "UNKNOWN", ChartType: "unknown",
		}
	}
	if result.Metadata != nil && result.Metadata.Ticker == "" {
		result.Metadata.Ticker = "UNKNOWN"
	}

	return result
}

// stripJSONFences removes markdown code fences the model sometimes wraps
// around JSON output.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
