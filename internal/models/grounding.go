package models

// AssetClass buckets a ticker for grounding-search purposes.
type AssetClass string

const (
	AssetEquity    AssetClass = "EQUITY"
	AssetCrypto    AssetClass = "CRYPTO"
	AssetForex     AssetClass = "FOREX"
	AssetCommodity AssetClass = "COMMODITY"
	AssetIndex     AssetClass = "INDEX"
)

// News sentiment values emitted by the grounding formatter pass.
const (
	SentimentBullish = "Bullish"
	SentimentBearish = "Bearish"
	SentimentNeutral = "Neutral"
	SentimentMixed   = "Mixed"
)

// Catalyst alignment values relative to the technical bias.
const (
	AlignmentSupports  = "Supports"
	AlignmentConflicts = "Conflicts"
	AlignmentNeutral   = "Neutral"
)

// Source is a web citation returned by search-augmented generation.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// EarningsInfo describes the next scheduled earnings event for an equity.
type EarningsInfo struct {
	NextDate     string `json:"next_date,omitempty"`
	DaysUntil    *int   `json:"days_until,omitempty"`
	IsImminent   bool   `json:"is_imminent"`
	LastSurprise string `json:"last_surprise,omitempty"`
}

// EconomicCalendar lists upcoming scheduled macro events.
type EconomicCalendar struct {
	UpcomingEvents []string `json:"upcoming_events"`
	HighImpactSoon bool     `json:"high_impact_soon"`
}

// SentimentInfo summarizes news flow around the ticker.
type SentimentInfo struct {
	NewsSentiment   string   `json:"news_sentiment"`
	RecentHeadlines []string `json:"recent_headlines"`
	AnalystRating   string   `json:"analyst_rating,omitempty"`
}

// VolatilityInfo captures the options/volatility backdrop.
type VolatilityInfo struct {
	ImpliedVolatilityPercentile *float64 `json:"implied_volatility_percentile,omitempty"`
	OptionsUnusualActivity      bool     `json:"options_unusual_activity"`
}

// RiskAssessment flags binary-event risk and catalyst alignment.
type RiskAssessment struct {
	BinaryEventRisk   bool     `json:"binary_event_risk"`
	RiskFactors       []string `json:"risk_factors"`
	CatalystAlignment string   `json:"catalyst_alignment"`
}

// GradeAdjustment records how the technical grade changed after grounding.
// AdjustedGrade is always one of the four ordinal grades.
type GradeAdjustment struct {
	OriginalGrade    Grade  `json:"original_grade"`
	AdjustedGrade    Grade  `json:"adjusted_grade"`
	AdjustmentReason string `json:"adjustment_reason"`
}

// GroundingResult is the outcome of one grounding-search run for a ticker.
// SearchPerformed is false on the degrade-gracefully path, in which case the
// adjusted grade always equals the original grade.
type GroundingResult struct {
	Ticker            string           `json:"ticker"`
	SearchPerformed   bool             `json:"search_performed"`
	NarrativeSummary  string           `json:"narrative_summary"`
	CriticalInsight   string           `json:"critical_insight"`
	Earnings          EarningsInfo     `json:"earnings"`
	EconomicCalendar  EconomicCalendar `json:"economic_calendar"`
	Sentiment         SentimentInfo    `json:"sentiment"`
	Volatility        VolatilityInfo   `json:"volatility"`
	RiskAssessment    RiskAssessment   `json:"risk_assessment"`
	GradeAdjustment   GradeAdjustment  `json:"grade_adjustment"`
	Sources           []Source         `json:"sources"`
	RawSearchResponse string           `json:"raw_search_response"`
}

// Clone returns a deep copy of the result. Cached entries are cloned before
// being handed to callers so a caller-side rewrite of the grade adjustment
// never leaks back into the cache.
func (g *GroundingResult) Clone() *GroundingResult {
	if g == nil {
		return nil
	}
	out := *g
	if g.Earnings.DaysUntil != nil {
		d := *g.Earnings.DaysUntil
		out.Earnings.DaysUntil = &d
	}
	if g.Volatility.ImpliedVolatilityPercentile != nil {
		v := *g.Volatility.ImpliedVolatilityPercentile
		out.Volatility.ImpliedVolatilityPercentile = &v
	}
	out.EconomicCalendar.UpcomingEvents = append([]string(nil), g.EconomicCalendar.UpcomingEvents...)
	out.Sentiment.RecentHeadlines = append([]string(nil), g.Sentiment.RecentHeadlines...)
	out.RiskAssessment.RiskFactors = append([]string(nil), g.RiskAssessment.RiskFactors...)
	out.Sources = append([]Source(nil), g.Sources...)
	return &out
}
