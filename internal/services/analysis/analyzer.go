package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/models"
)

// Analyzer runs the strategy-specific chart analysis and produces the graded
// scorecard. The grade it emits is pre-grounding; the orchestrator may lower
// it afterwards.
type Analyzer struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
	now    func() time.Time
}

// NewAnalyzer creates a strategy analyzer.
func NewAnalyzer(gemini interfaces.GeminiClient, logger *common.Logger) *Analyzer {
	return &Analyzer{gemini: gemini, logger: logger, now: time.Now}
}

// Analyze grades the chart against the given strategy. A gateway failure or
// empty response is fatal; a response that parses but misses fields is
// repaired field by field with conservative defaults.
func (a *Analyzer) Analyze(ctx context.Context, strategy models.Strategy, meta *models.ChartMetadata, image *interfaces.ImagePart) (*models.FinalAnalysis, error) {
	systemPrompt := buildAnalysisPrompt(strategy, meta, a.now().UTC())
	userPrompt := fmt.Sprintf("Analyze this chart using %s methodology and provide a graded trade recommendation.", strategy.ID)

	raw, err := a.gemini.GenerateStructured(ctx, systemPrompt, userPrompt, image)
	if err != nil {
		return nil, fmt.Errorf("strategy analysis failed: %w", err)
	}

	analysis := &models.FinalAnalysis{}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), analysis); err != nil {
		a.logger.Warn().Err(err).Str("strategy", strategy.ID).Msg("Analysis response unparsable")
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	applyAnalysisDefaults(analysis, strategy, meta, a.now().UTC())
	return analysis, nil
}

// applyAnalysisDefaults repairs missing fields so downstream consumers never
// see zero-value scorecards presented as real data.
func applyAnalysisDefaults(analysis *models.FinalAnalysis, strategy models.Strategy, meta *models.ChartMetadata, now time.Time) {
	if analysis.Meta.Ticker == "" {
		analysis.Meta.Ticker = meta.Ticker
	}
	if analysis.Meta.StrategyUsed == "" {
		analysis.Meta.StrategyUsed = strategy.ID
	}
	if analysis.Meta.Timestamp == "" {
		analysis.Meta.Timestamp = now.Format(time.RFC3339)
	}

	g := &analysis.Grading
	g.Grade = models.NormalizeGrade(string(g.Grade), models.GradeC)
	if g.Headline == "" {
		g.Headline = "Analysis complete"
	}
	g.VisualScore = defaultScore(g.VisualScore)
	g.DataScore = defaultScore(g.DataScore)
	g.SentimentScore = defaultScore(g.SentimentScore)
	g.RiskRewardScore = defaultScore(g.RiskRewardScore)
	g.MomentumScore = defaultScore(g.MomentumScore)
	if g.ActionPlan.Action == "" {
		g.ActionPlan = models.ActionPlan{
			Action: models.ActionWait, Price: "N/A", StopLoss: "N/A", Target: "N/A",
		}
	}
	if g.Reasoning == "" {
		g.Reasoning = "See detailed analysis"
	}

	va := &analysis.VisualAnalysis
	if va.Trend == "" {
		va.Trend = models.BiasNeutral
	}
	if va.PatternsDetected == nil {
		va.PatternsDetected = []string{}
	}
	if va.KeyLevelsVisible == nil {
		va.KeyLevelsVisible = map[string]string{}
	}
	if va.ChartQualityCheck == "" {
		va.ChartQualityCheck = "Analysis complete"
	}

	tp := &analysis.TradePlan
	if tp.Bias == "" {
		tp.Bias = models.BiasNeutral
	}
	if tp.EntryZone == "" {
		tp.EntryZone = "N/A"
	}
	if tp.StopLoss == "" {
		tp.StopLoss = "N/A"
	}
	if tp.TakeProfit1 == "" {
		tp.TakeProfit1 = "N/A"
	}
	if tp.TakeProfit2 == "" {
		tp.TakeProfit2 = "N/A"
	}

	if analysis.ConfidenceScore <= 0 || analysis.ConfidenceScore > 100 {
		analysis.ConfidenceScore = 50
	}
	if analysis.FinalVerdict == "" {
		analysis.FinalVerdict = "Analysis complete. Review the scorecard for details."
	}
}

// defaultScore clamps a sub-score to 0-100, treating an absent (zero) score
// as the neutral midpoint. A genuine zero and a missing field are not
// distinguishable on the wire, so both land on 50.
func defaultScore(score int) int {
	if score <= 0 {
		return 50
	}
	if score > 100 {
		return 100
	}
	return score
}

// buildAnalysisPrompt composes the strategy-specific system prompt with the
// grading rubric and the exact JSON shape to return.
func buildAnalysisPrompt(strategy models.Strategy, meta *models.ChartMetadata, now time.Time) string {
	return fmt.Sprintf(`You are an elite trading analyst specializing in %s.

Analyze this %s chart (%s timeframe, current price ~%g) using the %s methodology.

Provide a comprehensive analysis in this exact JSON format:
{
  "meta": {
    "ticker": "%s",
    "strategy_used": "%s",
    "timestamp": "%s"
  },
  "grading": {
    "grade": "A+" | "A" | "B" | "C",
    "headline": "One-line trade thesis (max 15 words)",
    "visual_score": 0-100 (chart pattern clarity and setup quality),
    "data_score": 0-100 (technical indicator confluence),
    "sentiment_score": 0-100 (market sentiment alignment),
    "risk_reward_score": 0-100 (risk/reward ratio quality),
    "momentum_score": 0-100 (trend strength and momentum),
    "action_plan": {
      "action": "BUY STOP" | "SELL STOP" | "LIMIT ORDER" | "WAIT" | "NO TRADE",
      "price": "entry price or zone as string",
      "stop_loss": "stop loss level as string",
      "target": "primary target as string"
    },
    "reasoning": "2-3 sentences explaining the grade and action"
  },
  "visual_analysis": {
    "trend": "BULLISH" | "BEARISH" | "NEUTRAL" | "CONSOLIDATING",
    "patterns_detected": ["array of pattern names found"],
    "key_levels_visible": {
      "resistance_1": "price level",
      "resistance_2": "price level or N/A",
      "support_1": "price level",
      "support_2": "price level or N/A",
      "pivot": "pivot point if applicable"
    },
    "chart_quality_check": "Brief assessment of chart readability"
  },
  "trade_plan": {
    "bias": "LONG" | "SHORT" | "NEUTRAL",
    "entry_zone": "specific price range for entry",
    "stop_loss": "stop loss price with reasoning",
    "take_profit_1": "first target with reasoning",
    "take_profit_2": "second target with reasoning"
  },
  "confidence_score": 0-100 (overall confidence in this analysis),
  "final_verdict": "2-3 sentence summary of the trade opportunity and recommendation"
}

GRADING CRITERIA:
- A+: Exceptional setup with multiple confirmations, clear structure, excellent R:R (>3:1), high probability
- A: Strong setup with good confluence, clear levels, good R:R (>2:1), favorable conditions
- B: Decent setup but missing some confirmations, acceptable R:R (>1.5:1), proceed with caution
- C: Weak setup, unclear structure, poor R:R, or conflicting signals - avoid or wait

Be specific with price levels. Use the %s methodology strictly.`,
		strategy.Description,
		meta.Ticker, meta.Timeframe, meta.CurrentPrice, strategy.ID,
		meta.Ticker, strategy.ID, now.Format(time.RFC3339),
		strategy.ID)
}
