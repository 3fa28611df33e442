package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

const annotationSystemPrompt = `You are a chart markup expert. Identify the key technical elements on this
trading chart and return drawable annotations for an SVG overlay.

Respond with JSON in this exact format:
{
  "annotations": [
    {
      "type": "trendline" | "zone" | "level" | "pattern" | "entry" | "stop" | "target",
      "label": "short label shown on the overlay",
      "description": "one sentence explaining the element",
      "x1": number, "y1": number, "x2": number, "y2": number,
      "color": "css color name or hex"
    }
  ],
  "summary": "one paragraph summarizing what was marked and why"
}

Coordinates are percentages of the image dimensions (0-100), origin top-left.
Point elements (entry, stop, target) set only x1/y1. Return at most 10
annotations, ordered by importance.`

// Annotator produces structured overlay annotations for a validated chart
// image, framed by the selected strategy.
type Annotator struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewAnnotator creates a chart annotator.
func NewAnnotator(gemini interfaces.GeminiClient, logger *common.Logger) *Annotator {
	return &Annotator{gemini: gemini, logger: logger}
}

// Annotate asks the model to mark up the chart. Gateway failures and
// unparsable output are fatal; there is no useful partial result to repair.
func (a *Annotator) Annotate(ctx context.Context, strategy models.Strategy, image *interfaces.ImagePart) (*models.AnnotationResult, error) {
	userPrompt := fmt.Sprintf(
		"Mark up this chart through the lens of the %s methodology: %s",
		strategy.Name, strategy.Description)

	raw, err := a.gemini.GenerateStructured(ctx, annotationSystemPrompt, userPrompt, image)
	if err != nil {
		return nil, fmt.Errorf("chart annotation failed: %w", err)
	}

	result := &models.AnnotationResult{}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), result); err != nil {
		a.logger.Warn().Err(err).Str("strategy", strategy.ID).Msg("Annotation response unparsable")
		return nil, fmt.Errorf("failed to parse annotation response: %w", err)
	}

	if result.Annotations == nil {
		result.Annotations = []models.ChartAnnotation{}
	}

	return result, nil
}
