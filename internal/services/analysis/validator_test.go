package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
)

func testImagePart() *interfaces.ImagePart {
	return &interfaces.ImagePart{Data: []byte{1, 2, 3}, MimeType: "image/png"}
}

func TestValidatorAcceptsChart(t *testing.T) {
	gemini := &mockGemini{responses: []string{validChartJSON}}
	v := NewValidator(gemini, common.NewSilentLogger())

	result := v.Validate(context.Background(), testImagePart())
	if !result.IsValidChart {
		t.Fatalf("expected valid chart, got rejection %q", result.RejectionReason)
	}
	if result.Metadata.Ticker != "AAPL" || result.Metadata.Timeframe != "4H" {
		t.Errorf("metadata = %+v", result.Metadata)
	}
	if len(gemini.tiers) != 1 || !gemini.tiers[0].VisionModel {
		t.Error("validation should run on the vision-tier model")
	}
}

func TestValidatorRejectsNonChart(t *testing.T) {
	gemini := &mockGemini{responses: []string{
		`{"is_valid_chart": false, "rejection_reason": "No price axis visible"}`,
	}}
	v := NewValidator(gemini, common.NewSilentLogger())

	result := v.Validate(context.Background(), testImagePart())
	if result.IsValidChart {
		t.Fatal("expected rejection")
	}
	if result.RejectionReason != "No price axis visible" {
		t.Errorf("reason = %q", result.RejectionReason)
	}
}

func TestValidatorGatewayErrorBecomesRejection(t *testing.T) {
	gemini := &mockGemini{errs: []error{errors.New("429 quota exhausted")}}
	v := NewValidator(gemini, common.NewSilentLogger())

	result := v.Validate(context.Background(), testImagePart())
	if result.IsValidChart {
		t.Fatal("expected rejection on gateway failure")
	}
	// The failure text is preserved so callers can classify rate limits.
	if !strings.Contains(result.RejectionReason, "429") {
		t.Errorf("reason = %q, want error text preserved", result.RejectionReason)
	}
}

func TestValidatorUnparsableResponse(t *testing.T) {
	gemini := &mockGemini{responses: []string{"looks like a chart to me"}}
	v := NewValidator(gemini, common.NewSilentLogger())

	result := v.Validate(context.Background(), testImagePart())
	if result.IsValidChart {
		t.Fatal("expected rejection for unparsable response")
	}
}

func TestValidatorFillsMissingMetadata(t *testing.T) {
	gemini := &mockGemini{responses: []string{`{"is_valid_chart": true}`}}
	v := NewValidator(gemini, common.NewSilentLogger())

	result := v.Validate(context.Background(), testImagePart())
	if !result.IsValidChart {
		t.Fatal("expected valid chart")
	}
	if result.Metadata == nil || result.Metadata.Ticker != "UNKNOWN" {
		t.Errorf("metadata = %+v, want UNKNOWN placeholder", result.Metadata)
	}
}
