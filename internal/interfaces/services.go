package interfaces

import (
	"context"

	"github.com/chartproof/chartproof/internal/models"
)

// AnalysisService runs the full analyze pipeline: validate, analyze, ground,
// merge, persist. Annotate is the lighter companion operation: structured
// overlay data for the chart image, nothing persisted.
type AnalysisService interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResult, error)
	Annotate(ctx context.Context, req *models.AnnotateRequest) (*models.AnnotationResult, error)
}

// GroundingService cross-references a technical grade and bias against
// real-time fundamental context and computes a possibly-adjusted grade.
// Never returns an error: on failure it degrades to a neutral result with
// SearchPerformed false and the grade unchanged.
type GroundingService interface {
	Ground(ctx context.Context, ticker, bias string, originalGrade models.Grade) *models.GroundingResult
}
