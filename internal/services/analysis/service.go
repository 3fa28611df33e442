package analysis

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

// allowedMimeTypes are the image formats accepted for upload.
var allowedMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Service orchestrates the analyze pipeline: validate the chart, run the
// strategy analysis, ground the grade against live market context, merge,
// and persist the report.
type Service struct {
	validator *Validator
	analyzer  *Analyzer
	annotator *Annotator
	grounding interfaces.GroundingService
	reports   interfaces.ReportStore
	logger    *common.Logger
	newID     func() string
	now       func() time.Time
}

// NewService wires the pipeline stages together.
func NewService(gemini interfaces.GeminiClient, grounding interfaces.GroundingService, reports interfaces.ReportStore, logger *common.Logger) *Service {
	return &Service{
		validator: NewValidator(gemini, logger),
		analyzer:  NewAnalyzer(gemini, logger),
		annotator: NewAnnotator(gemini, logger),
		grounding: grounding,
		reports:   reports,
		logger:    logger,
		newID:     uuid.NewString,
		now:       models.NowUTC,
	}
}

// Analyze runs the full pipeline for one uploaded chart. Validation failures
// return an InvalidChartError; analysis failures return the underlying
// error; grounding never fails the pipeline.
func (s *Service) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResult, error) {
	strategy := models.StrategyByID(req.Strategy)
	if strategy == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
	}

	image, err := decodeImage(req.ImageBase64, req.ImageMimeType)
	if err != nil {
		return nil, err
	}

	validation := s.validator.Validate(ctx, image)
	if !validation.IsValidChart {
		s.logger.Info().Str("reason", validation.RejectionReason).Msg("Chart rejected")
		return nil, &InvalidChartError{Result: validation}
	}

	s.logger.Info().
		Str("ticker", validation.Metadata.Ticker).
		Str("strategy", strategy.ID).
		Msg("Chart validated, running analysis")

	analysis, err := s.analyzer.Analyze(ctx, *strategy, validation.Metadata, image)
	if err != nil {
		return nil, err
	}

	originalGrade := analysis.Grading.Grade
	grounding := s.grounding.Ground(ctx, validation.Metadata.Ticker, analysis.TradePlan.Bias, originalGrade)
	finalGrade := grounding.GradeAdjustment.AdjustedGrade

	// The stored grade is always the post-grounding grade; the pre-grounding
	// grade survives inside the grade adjustment.
	analysis.Grading.Grade = finalGrade
	analysis.GroundingResult = grounding
	if grounding.SearchPerformed {
		analysis.GroundingFindings = grounding.CriticalInsight
	}

	report := &models.Report{
		ID:        s.newID(),
		Timestamp: s.now(),
		Ticker:    validation.Metadata.Ticker,
		Strategy:  strategy.ID,
		Grade:     finalGrade,
		Bias:      analysis.TradePlan.Bias,
		Data:      *analysis,
		Validation: models.ValidationResult{
			IsValidChart: true,
			Metadata:     validation.Metadata,
		},
	}

	if _, err := s.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info().
		Str("report_id", report.ID).
		Str("ticker", report.Ticker).
		Str("grade", string(finalGrade)).
		Bool("adjusted", finalGrade != originalGrade).
		Msg("Analysis complete")

	return &models.AnalyzeResult{
		Report: report,
		Grounding: models.GroundingMeta{
			Performed:     grounding.SearchPerformed,
			GradeAdjusted: finalGrade != originalGrade,
			OriginalGrade: originalGrade,
			FinalGrade:    finalGrade,
			Reason:        grounding.GradeAdjustment.AdjustmentReason,
		},
	}, nil
}

// Annotate produces overlay annotation data for a chart without running the
// full grading pipeline. Nothing is persisted.
func (s *Service) Annotate(ctx context.Context, req *models.AnnotateRequest) (*models.AnnotationResult, error) {
	strategy := models.StrategyByID(req.Strategy)
	if strategy == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
	}

	image, err := decodeImage(req.ImageBase64, req.ImageMimeType)
	if err != nil {
		return nil, err
	}

	result, err := s.annotator.Annotate(ctx, *strategy, image)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("strategy", strategy.ID).
		Int("annotations", len(result.Annotations)).
		Msg("Chart annotated")

	return result, nil
}

// decodeImage turns a base64 payload into raw bytes, tolerating a data-URL
// prefix and defaulting the MIME type to PNG.
func decodeImage(imageBase64, imageMimeType string) (*interfaces.ImagePart, error) {
	payload := strings.TrimSpace(imageBase64)
	if payload == "" {
		return nil, ErrMissingImage
	}

	mimeType := imageMimeType
	if idx := strings.Index(payload, ";base64,"); idx >= 0 && strings.HasPrefix(payload, "data:") {
		if mimeType == "" {
			mimeType = payload[len("data:"):idx]
		}
		payload = payload[idx+len(";base64,"):]
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidImage, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, ErrMissingImage
	}

	return &interfaces.ImagePart{Data: data, MimeType: mimeType}, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
