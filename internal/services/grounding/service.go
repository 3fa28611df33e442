package grounding

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

const (
	// maxRawResponseChars bounds the stored raw search text.
	maxRawResponseChars = 2000

	// DefaultMaxSources limits citations kept per grounding run.
	DefaultMaxSources = 5
)

// Service implements interfaces.GroundingService. It validates a technical
// setup against real-world catalysts in two phases: a search-grounded
// free-text pass, then a strict-JSON formatter pass over that text. Search
// grounding and strict structured output are different tool modes in the
// underlying model and cannot be combined in one call.
type Service struct {
	gemini     interfaces.GeminiClient
	cache      *Cache
	maxSources int
	logger     *common.Logger
}

// ServiceOption configures the grounding service.
type ServiceOption func(*Service)

// WithCacheTTL sets the grounding cache TTL.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cache = NewCache(ttl)
	}
}

// WithMaxSources sets the citation limit per run.
func WithMaxSources(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxSources = n
		}
	}
}

// NewService creates a grounding service.
func NewService(gemini interfaces.GeminiClient, logger *common.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		gemini:     gemini,
		cache:      NewCache(DefaultCacheTTL),
		maxSources: DefaultMaxSources,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ground fetches real-time fundamental context for ticker and computes a
// grade adjustment relative to the technical grade and bias. Never returns
// an error: any gateway failure degrades to a neutral result with
// SearchPerformed false and the grade unchanged.
func (s *Service) Ground(ctx context.Context, ticker, bias string, originalGrade models.Grade) *models.GroundingResult {
	if !originalGrade.IsValid() {
		originalGrade = models.GradeC
	}

	// Phase 0: cache. The cached entry answers "what does the market context
	// say" independent of which run is asking, so only the original grade is
	// rewritten; the adjusted target is preserved.
	if cached := s.cache.Get(ticker); cached != nil {
		s.logger.Debug().Str("ticker", ticker).Msg("Grounding cache hit")
		cached.GradeAdjustment.OriginalGrade = originalGrade
		return cached
	}

	classification := ClassifyAsset(ticker)
	s.logger.Info().
		Str("ticker", ticker).
		Str("asset_class", string(classification.AssetClass)).
		Str("bias", bias).
		Str("grade", string(originalGrade)).
		Msg("Running grounding search")

	// Phase 1: search-grounded free text.
	searchPrompt := buildSearchPrompt(ticker, bias, originalGrade, classification)
	grounded, err := s.gemini.GenerateGrounded(ctx, searchPrompt)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Grounding search failed")
		return fallbackResult(ticker, originalGrade, err)
	}

	// Phase 2: structure the raw text with a formatter pass.
	structurePrompt := buildStructurePrompt(ticker, bias, originalGrade, grounded.Text)
	structuredJSON, err := s.gemini.GenerateStructured(ctx,
		"You are a JSON formatter. Output only valid JSON, no markdown.",
		structurePrompt, nil)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Grounding structuring failed")
		return fallbackResult(ticker, originalGrade, err)
	}

	// Phase 3: defaulting, grade normalization, event cap, caching.
	result := parseGroundingResponse(structuredJSON)
	applyGroundingDefaults(result, ticker, originalGrade)

	result.Sources = grounded.Sources
	if len(result.Sources) > s.maxSources {
		result.Sources = result.Sources[:s.maxSources]
	}
	result.RawSearchResponse = truncate(grounded.Text, maxRawResponseChars)

	s.logger.Info().
		Str("ticker", ticker).
		Str("original", string(result.GradeAdjustment.OriginalGrade)).
		Str("adjusted", string(result.GradeAdjustment.AdjustedGrade)).
		Int("sources", len(result.Sources)).
		Msg("Grounding complete")

	s.cache.Set(ticker, result)
	return result
}

// parseGroundingResponse unmarshals the formatter output, tolerating code
// fences. An unparsable payload yields a zero result that the defaulting
// pass fills in.
func parseGroundingResponse(raw string) *models.GroundingResult {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	result := &models.GroundingResult{}
	if err := json.Unmarshal([]byte(raw), result); err != nil {
		return &models.GroundingResult{}
	}
	return result
}

// applyGroundingDefaults fills missing fields with conservative neutral
// values and enforces the grade invariants: the adjusted grade is always one
// of the four ordinal grades, and a binary-event cap is a hard ceiling
// applied after any downgrade stacking the model already did.
func applyGroundingDefaults(result *models.GroundingResult, ticker string, originalGrade models.Grade) {
	result.Ticker = ticker
	result.SearchPerformed = true

	if result.NarrativeSummary == "" {
		result.NarrativeSummary = fmt.Sprintf("External data analysis for %s.", ticker)
	}
	if result.CriticalInsight == "" {
		result.CriticalInsight = "Analysis based on available market data."
	}
	if result.EconomicCalendar.UpcomingEvents == nil {
		result.EconomicCalendar.UpcomingEvents = []string{}
	}
	if result.Sentiment.NewsSentiment == "" {
		result.Sentiment.NewsSentiment = models.SentimentNeutral
	}
	if result.Sentiment.RecentHeadlines == nil {
		result.Sentiment.RecentHeadlines = []string{}
	}
	if result.RiskAssessment.RiskFactors == nil {
		result.RiskAssessment.RiskFactors = []string{}
	}
	if result.RiskAssessment.CatalystAlignment == "" {
		result.RiskAssessment.CatalystAlignment = models.AlignmentNeutral
	}

	result.GradeAdjustment.OriginalGrade = originalGrade
	adjusted := models.NormalizeGrade(string(result.GradeAdjustment.AdjustedGrade), originalGrade)

	if ceiling, reason, capped := eventCap(result); capped {
		lowered := models.CapGrade(adjusted, ceiling)
		if lowered != adjusted {
			adjusted = lowered
			result.GradeAdjustment.AdjustmentReason = strings.TrimSpace(
				result.GradeAdjustment.AdjustmentReason + " " + reason)
		}
	}

	result.GradeAdjustment.AdjustedGrade = adjusted
	if result.GradeAdjustment.AdjustmentReason == "" {
		if adjusted == originalGrade {
			result.GradeAdjustment.AdjustmentReason = "No adjustment needed"
		} else {
			result.GradeAdjustment.AdjustmentReason = "Grade adjusted based on fundamental context"
		}
	}
}

// eventCap derives the binary-event grade ceiling. An event inside the 12h
// window caps at C; a flagged high-impact event inside the 48h window caps
// at B. No flagged event, no cap.
func eventCap(result *models.GroundingResult) (models.Grade, string, bool) {
	if !result.RiskAssessment.BinaryEventRisk && !result.EconomicCalendar.HighImpactSoon {
		return "", "", false
	}
	if d := result.Earnings.DaysUntil; d != nil && *d <= 0 {
		return models.GradeC, "Grade capped at C: binary event within 12 hours.", true
	}
	return models.GradeB, "Grade capped at B: high-impact event within 48 hours.", true
}

// fallbackResult is the degrade-gracefully path: a well-formed neutral
// result that never invents a grade change when search failed.
func fallbackResult(ticker string, originalGrade models.Grade, err error) *models.GroundingResult {
	return &models.GroundingResult{
		Ticker:           ticker,
		SearchPerformed:  false,
		NarrativeSummary: "Market grounding search was not performed. Analysis is based on visual chart patterns only.",
		CriticalInsight:  "No external data available. Rely on technical analysis.",
		EconomicCalendar: models.EconomicCalendar{UpcomingEvents: []string{}},
		Sentiment: models.SentimentInfo{
			NewsSentiment:   models.SentimentNeutral,
			RecentHeadlines: []string{},
		},
		RiskAssessment: models.RiskAssessment{
			RiskFactors:       []string{"Grounding search unavailable"},
			CatalystAlignment: models.AlignmentNeutral,
		},
		GradeAdjustment: models.GradeAdjustment{
			OriginalGrade:    originalGrade,
			AdjustedGrade:    originalGrade,
			AdjustmentReason: "Search unavailable - using visual analysis grade only",
		},
		Sources:           []models.Source{},
		RawSearchResponse: fmt.Sprintf("Error: %v", err),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
