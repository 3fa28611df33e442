package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

func testMetadata() *models.ChartMetadata {
	return &models.ChartMetadata{
		Ticker: "AAPL", Timeframe: "4H", CurrentPrice: 230, ChartType: "candlestick",
	}
}

func testStrategy() models.Strategy {
	return *models.StrategyByID("SMC")
}

func TestAnalyzerDefaultsSparsePayload(t *testing.T) {
	gemini := &mockGemini{responses: []string{`{"grading": {"grade": "A+"}}`}}
	a := NewAnalyzer(gemini, common.NewSilentLogger())

	analysis, err := a.Analyze(context.Background(), testStrategy(), testMetadata(),
		&interfaces.ImagePart{Data: []byte{1}, MimeType: "image/png"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if analysis.Grading.Grade != models.GradeAPlus {
		t.Errorf("grade = %q", analysis.Grading.Grade)
	}
	if analysis.Grading.VisualScore != 50 || analysis.Grading.MomentumScore != 50 {
		t.Error("missing scores should default to 50")
	}
	if analysis.Grading.ActionPlan.Action != models.ActionWait {
		t.Errorf("action = %q, want WAIT", analysis.Grading.ActionPlan.Action)
	}
	if analysis.VisualAnalysis.Trend != models.BiasNeutral {
		t.Errorf("trend = %q, want NEUTRAL", analysis.VisualAnalysis.Trend)
	}
	if analysis.TradePlan.Bias != models.BiasNeutral {
		t.Errorf("bias = %q, want NEUTRAL", analysis.TradePlan.Bias)
	}
	if analysis.VisualAnalysis.PatternsDetected == nil || analysis.VisualAnalysis.KeyLevelsVisible == nil {
		t.Error("missing collections should default to empty")
	}
	if analysis.ConfidenceScore != 50 {
		t.Errorf("confidence = %d, want 50", analysis.ConfidenceScore)
	}
	if analysis.Meta.Ticker != "AAPL" || analysis.Meta.StrategyUsed != "SMC" || analysis.Meta.Timestamp == "" {
		t.Errorf("meta = %+v", analysis.Meta)
	}
	// The reasoning pass carries an image but must stay on the main model.
	if len(gemini.tiers) != 1 || gemini.tiers[0].VisionModel {
		t.Error("strategy analysis must not run on the vision-tier model")
	}
}

func TestAnalyzerInvalidGradeDefaultsToC(t *testing.T) {
	gemini := &mockGemini{responses: []string{`{"grading": {"grade": "S-tier"}}`}}
	a := NewAnalyzer(gemini, common.NewSilentLogger())

	analysis, err := a.Analyze(context.Background(), testStrategy(), testMetadata(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Grading.Grade != models.GradeC {
		t.Errorf("grade = %q, want C", analysis.Grading.Grade)
	}
}

func TestAnalyzerStripsCodeFences(t *testing.T) {
	gemini := &mockGemini{responses: []string{"```json\n" + `{"grading": {"grade": "B"}}` + "\n```"}}
	a := NewAnalyzer(gemini, common.NewSilentLogger())

	analysis, err := a.Analyze(context.Background(), testStrategy(), testMetadata(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Grading.Grade != models.GradeB {
		t.Errorf("grade = %q, want B", analysis.Grading.Grade)
	}
}

func TestAnalyzerGatewayErrorIsFatal(t *testing.T) {
	gemini := &mockGemini{errs: []error{errors.New("model unavailable")}}
	a := NewAnalyzer(gemini, common.NewSilentLogger())

	if _, err := a.Analyze(context.Background(), testStrategy(), testMetadata(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestAnalyzerUnparsableResponseIsFatal(t *testing.T) {
	gemini := &mockGemini{responses: []string{"the chart looks great"}}
	a := NewAnalyzer(gemini, common.NewSilentLogger())

	if _, err := a.Analyze(context.Background(), testStrategy(), testMetadata(), nil); err == nil {
		t.Fatal("expected error for unparsable response")
	}
}
