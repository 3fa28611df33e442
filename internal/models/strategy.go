package models

// Strategy is one of the fixed technical-analysis methodologies a chart can
// be analyzed with. The descriptions frame the analyzer's system prompt.
type Strategy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Strategies is the fixed catalog, in display order. Static configuration,
// not logic.
var Strategies = []Strategy{
	{ID: "SMC", Name: "Smart Money Concepts", Description: "Smart Money Concepts (SMC) - Analyze order blocks, liquidity pools, fair value gaps, breaker blocks, mitigation blocks, and institutional order flow"},
	{ID: "ICT_2022", Name: "ICT 2022 Model", Description: "ICT 2022 Mentorship Model - Identify Liquidity Sweeps (raids above/below swing highs/lows), Market Structure Shift (MSS) with Displacement, Fair Value Gaps (FVG), and Kill Zone timing (NY AM 8:30-11:00). Look for stop hunts followed by aggressive displacement candles creating imbalances"},
	{ID: "LIQUIDITY_FLOW", Name: "Liquidity Flow", Description: "Liquidity Flow Analysis - Track where liquidity is being swept, stop hunts, liquidity grabs, and smart money accumulation/distribution"},
	{ID: "CAN_SLIM", Name: "CAN SLIM", Description: "CAN SLIM Strategy - Evaluate Current earnings, Annual earnings, New products/management, Supply/demand, Leader/laggard, Institutional sponsorship, Market direction"},
	{ID: "VCP", Name: "Volatility Contraction", Description: "Volatility Contraction Pattern - Identify price consolidations with decreasing volatility, pivot points, and breakout setups with volume confirmation"},
	{ID: "DOW", Name: "Dow Theory", Description: "Dow Theory - Analyze primary/secondary/minor trends, accumulation/distribution phases, trend confirmation across indices"},
	{ID: "ELLIOTT", Name: "Elliott Wave", Description: "Elliott Wave Theory - Count impulse waves (1-5) and corrective waves (A-B-C), identify wave degree, Fibonacci relationships"},
	{ID: "GANN", Name: "Gann Analysis", Description: "Gann Analysis - Apply Gann angles, time cycles, square of nine, fan lines, and geometric price/time relationships"},
	{ID: "WYCKOFF", Name: "Wyckoff Method", Description: "Wyckoff Method - Identify accumulation/distribution phases, springs, upthrusts, sign of strength/weakness, composite operator activity"},
	{ID: "INVESTMENT_CLOCK", Name: "Investment Clock", Description: "Investment Clock - Assess economic cycle position (recovery, expansion, slowdown, recession) and sector rotation implications"},
	{ID: "LPPL", Name: "Log-Periodic Power Law", Description: "Log-Periodic Power Law (LPPL) - Detect bubble formation, crash prediction patterns, and critical time estimation"},
	{ID: "INTERMARKET", Name: "Intermarket Analysis", Description: "Intermarket Analysis - Evaluate correlations between stocks, bonds, commodities, currencies, and cross-market signals"},
	{ID: "FRACTAL", Name: "Fractal Analysis", Description: "Fractal Analysis - Identify self-similar patterns across timeframes, fractal breakouts, and multi-timeframe confluence"},
	{ID: "SENTIMENT", Name: "Sentiment Analysis", Description: "Sentiment Analysis - Evaluate market sentiment indicators, fear/greed levels, positioning data, and contrarian signals"},
}

// StrategyByID returns the strategy with the given id, or nil.
func StrategyByID(id string) *Strategy {
	for i := range Strategies {
		if Strategies[i].ID == id {
			return &Strategies[i]
		}
	}
	return nil
}

// IsValidStrategy reports whether id names a known strategy.
func IsValidStrategy(id string) bool {
	return StrategyByID(id) != nil
}
