// Package models defines the data contracts for Chartproof
package models

import "time"

// Grade is the ordinal quality rating of a trade setup: A+ > A > B > C.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
)

// gradeRank maps grades to an ordinal scale. Higher is better.
var gradeRank = map[Grade]int{
	GradeC:     0,
	GradeB:     1,
	GradeA:     2,
	GradeAPlus: 3,
}

// gradeByRank is the inverse of gradeRank.
var gradeByRank = [...]Grade{GradeC, GradeB, GradeA, GradeAPlus}

// IsValid reports whether g is one of the four known grades.
func (g Grade) IsValid() bool {
	_, ok := gradeRank[g]
	return ok
}

// NormalizeGrade returns g if it is a known grade, otherwise fallback.
func NormalizeGrade(g string, fallback Grade) Grade {
	if Grade(g).IsValid() {
		return Grade(g)
	}
	return fallback
}

// CapGrade returns the worse of g and ceiling. Used for binary-event caps:
// the cap is a hard ceiling that downgrades may lower further but never exceed.
func CapGrade(g, ceiling Grade) Grade {
	if !g.IsValid() {
		g = GradeC
	}
	if !ceiling.IsValid() {
		return g
	}
	if gradeRank[g] > gradeRank[ceiling] {
		return ceiling
	}
	return g
}

// DowngradeGrade lowers g by the given number of steps, floored at C.
func DowngradeGrade(g Grade, steps int) Grade {
	if !g.IsValid() {
		return GradeC
	}
	rank := gradeRank[g] - steps
	if rank < 0 {
		rank = 0
	}
	if rank > len(gradeByRank)-1 {
		rank = len(gradeByRank) - 1
	}
	return gradeByRank[rank]
}

// Directional bias values. Kept as free strings on the wire since the model
// occasionally returns variants, but these are the canonical ones.
const (
	BiasLong    = "LONG"
	BiasShort   = "SHORT"
	BiasNeutral = "NEUTRAL"
)

// Trade actions for the action plan.
const (
	ActionBuyStop    = "BUY STOP"
	ActionSellStop   = "SELL STOP"
	ActionLimitOrder = "LIMIT ORDER"
	ActionWait       = "WAIT"
	ActionNoTrade    = "NO TRADE"
)

// ChartMetadata is coarse metadata extracted during chart validation.
// Immutable once produced; consumed by the strategy analyzer.
type ChartMetadata struct {
	Ticker       string  `json:"ticker"`
	Timeframe    string  `json:"timeframe"`
	CurrentPrice float64 `json:"current_price"`
	ChartType    string  `json:"chart_type"`
}

// ValidationResult is the outcome of the chart validation stage. When
// IsValidChart is false the pipeline terminates and RejectionReason is set.
type ValidationResult struct {
	IsValidChart    bool           `json:"is_valid_chart"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	Metadata        *ChartMetadata `json:"metadata,omitempty"`
}

// ActionPlan describes the concrete order to place. Price fields are
// free-text strings; the system never does arithmetic on them.
type ActionPlan struct {
	Action   string `json:"action"`
	Price    string `json:"price"`
	StopLoss string `json:"stop_loss"`
	Target   string `json:"target"`
}

// GradingData is the scorecard produced by the strategy analyzer.
// Sub-scores are 0-100 each, independent of one another.
type GradingData struct {
	Grade           Grade      `json:"grade"`
	Headline        string     `json:"headline"`
	VisualScore     int        `json:"visual_score"`
	DataScore       int        `json:"data_score"`
	SentimentScore  int        `json:"sentiment_score"`
	RiskRewardScore int        `json:"risk_reward_score"`
	MomentumScore   int        `json:"momentum_score"`
	ActionPlan      ActionPlan `json:"action_plan"`
	Reasoning       string     `json:"reasoning"`
}

// VisualAnalysis captures what is visible on the chart itself.
type VisualAnalysis struct {
	Trend             string            `json:"trend"`
	PatternsDetected  []string          `json:"patterns_detected"`
	KeyLevelsVisible  map[string]string `json:"key_levels_visible"`
	ChartQualityCheck string            `json:"chart_quality_check"`
}

// TradePlan is the directional plan derived from the analysis.
type TradePlan struct {
	Bias        string `json:"bias"`
	EntryZone   string `json:"entry_zone"`
	StopLoss    string `json:"stop_loss"`
	TakeProfit1 string `json:"take_profit_1"`
	TakeProfit2 string `json:"take_profit_2"`
}

// AnalysisMeta identifies one pipeline run.
type AnalysisMeta struct {
	Ticker       string `json:"ticker"`
	StrategyUsed string `json:"strategy_used"`
	Timestamp    string `json:"timestamp"`
}

// FinalAnalysis is the canonical output of one pipeline run. GroundingResult
// and GroundingFindings are attached by the orchestrator after the grounding
// stage; the stored grade is always the post-grounding grade.
type FinalAnalysis struct {
	Meta              AnalysisMeta     `json:"meta"`
	Grading           GradingData      `json:"grading"`
	VisualAnalysis    VisualAnalysis   `json:"visual_analysis"`
	TradePlan         TradePlan        `json:"trade_plan"`
	GroundingFindings string           `json:"grounding_findings,omitempty"`
	GroundingResult   *GroundingResult `json:"grounding_result,omitempty"`
	ConfidenceScore   int              `json:"confidence_score"`
	FinalVerdict      string           `json:"final_verdict"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Strategy      string `json:"strategy"`
	ImageBase64   string `json:"imageBase64"`
	ImageMimeType string `json:"imageMimeType"`
}

// GroundingMeta is the small metadata block returned alongside a report
// describing whether and why the technical grade was adjusted.
type GroundingMeta struct {
	Performed     bool   `json:"performed"`
	GradeAdjusted bool   `json:"grade_adjusted"`
	OriginalGrade Grade  `json:"original_grade"`
	FinalGrade    Grade  `json:"final_grade"`
	Reason        string `json:"reason"`
}

// AnalyzeResult bundles the persisted report with grounding metadata.
type AnalyzeResult struct {
	Report    *Report       `json:"report"`
	Grounding GroundingMeta `json:"grounding"`
}

// NowUTC returns the current UTC time truncated to seconds, the precision
// used for report timestamps.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
