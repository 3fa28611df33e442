package grounding

import (
	"fmt"
	"strings"

	"github.com/chartproof/chartproof/internal/models"
)

// searchFocusBlocks describe, per asset class, what the grounded search pass
// should prioritize.
var searchFocusBlocks = map[models.AssetClass]string{
	models.AssetEquity: `SEARCH FOCUS (EQUITY):
1. Earnings: next earnings date, days until, last earnings surprise. Earnings within 5 trading days is a binary event.
2. Analyst activity: upgrades, downgrades, price target changes in the last 7 days.
3. News sentiment: major headlines, institutional or insider activity.
4. Options: implied volatility percentile and unusual options activity if reported.`,

	models.AssetCrypto: `SEARCH FOCUS (CRYPTO):
1. Regulatory: SEC actions, government policy, exchange news affecting this asset.
2. Market structure: overall crypto sentiment (Fear and Greed), Bitcoin dominance trend.
3. Protocol: upgrades, hacks, security incidents in the last 7 days.
4. Flows: large on-chain movements or ETF flows if reported.`,

	models.AssetForex: `SEARCH FOCUS (FOREX):
1. Economic calendar: high-impact releases (CPI, NFP, rate decisions) in the next 48 hours for both currencies.
2. Central banks: latest and upcoming Fed, ECB, BOJ, BOE policy signals.
3. Geopolitics: events moving currency markets now.
4. Positioning: notable CFTC or analyst positioning data.`,

	models.AssetCommodity: `SEARCH FOCUS (COMMODITY):
1. Supply and demand: inventory reports, production data, OPEC or USDA releases.
2. Dollar: US Dollar Index strength and direction, which moves all commodities.
3. Positioning: latest COT report trends.
4. Geopolitics: supply disruptions, sanctions, weather events.`,

	models.AssetIndex: `SEARCH FOCUS (INDEX):
1. Volatility: current VIX level and trend.
2. Rates: 10-year Treasury yield direction.
3. Breadth: advance/decline behavior, percentage of stocks above key averages.
4. Calendar: FOMC, CPI, or other index-moving events in the next 48 hours.`,
}

// buildSearchPrompt composes the phase-1 prompt: analyst framing, the
// asset-class focus block, the grading rules the model must reason with, and
// the concrete queries to run.
func buildSearchPrompt(ticker, bias string, grade models.Grade, c Classification) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a Senior Macro Strategist and Risk Manager. A technical analyst has graded a %s chart setup as %s with a %s bias. Your job is to stress-test that grade against real-world context using live search.

Asset class: %s

%s

GRADING RULES you must apply:
- BINARY EVENT RULE: if a binary event (earnings, FOMC, CPI, rate decision) occurs within 12 hours, the setup cannot be graded better than C regardless of technical quality. Within 48 hours, it cannot be graded better than A-minus territory; treat it as capped at B.
- DIVERGENCE RULE: if news sentiment or fundamental catalysts strongly contradict the %s technical bias, downgrade one step. If they strongly confirm it, the grade may improve one step, but never above A+.
- When evidence is thin or ambiguous, keep the grade unchanged. Never invent data.

Run these searches and synthesize the findings:
`, ticker, grade, bias, c.AssetClass, searchFocusBlocks[c.AssetClass], bias)

	for i, q := range c.SearchQueries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}

	b.WriteString(`
Report concisely: upcoming events and their timing, news sentiment with key headlines, volatility context, risk factors, whether catalysts confirm or contradict the technical bias, and your recommended final grade with reasoning.`)

	return b.String()
}

// buildStructurePrompt composes the phase-2 prompt that turns the raw search
// narrative into the strict JSON the rest of the pipeline consumes.
func buildStructurePrompt(ticker, bias string, grade models.Grade, rawText string) string {
	return fmt.Sprintf(`Convert the following market research into JSON. The research concerns ticker %s, technical bias %s, original technical grade %s.

RESEARCH:
%s

Output JSON with exactly this shape:
{
  "ticker": "%s",
  "search_performed": true,
  "earnings": {
    "next_date": "string or empty",
    "days_until": number or null,
    "is_imminent": boolean,
    "last_surprise": "string or empty"
  },
  "economic_calendar": {
    "upcoming_events": ["string"],
    "high_impact_soon": boolean
  },
  "sentiment": {
    "news_sentiment": "Bullish|Bearish|Neutral|Mixed",
    "recent_headlines": ["string"]
  },
  "volatility": {
    "implied_volatility_percentile": number or null,
    "options_unusual_activity": boolean
  },
  "risk_assessment": {
    "binary_event_risk": boolean,
    "risk_factors": ["string"],
    "catalyst_alignment": "Supports|Conflicts|Neutral"
  },
  "grade_adjustment": {
    "original_grade": "%s",
    "adjusted_grade": "A+|A|B|C",
    "adjustment_reason": "string"
  },
  "narrative_summary": "2-3 sentence synthesis",
  "critical_insight": "the single most important finding"
}

Rules:
- adjusted_grade must reflect the grading rules in the research: binary event within 12 hours caps the grade at C, within 48 hours caps it at B, and strong contradiction of the %s bias downgrades one step.
- high_impact_soon is true only when a high-impact event (CPI, FOMC, NFP, rate decision, earnings) falls within the next 3 days.
- Use null for unknown numbers, empty strings and empty arrays for unknown text. Never fabricate values.`, ticker, bias, grade, rawText, ticker, grade, bias)
}
