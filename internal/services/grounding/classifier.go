// Package grounding cross-references technical chart analysis against
// real-time fundamental context fetched via search-grounded generation.
package grounding

import (
	"fmt"
	"strings"

	"github.com/chartproof/chartproof/internal/models"
)

// Classification maps a ticker to an asset class and the search queries the
// grounding engine runs for it.
type Classification struct {
	AssetClass    models.AssetClass
	SearchQueries []string
}

// Pattern groups checked in priority order. Tickers can contain ambiguous
// substrings ("BTC" inside an equity-looking symbol), so the order is fixed:
// crypto > forex > commodity > index > equity.
var (
	cryptoPatterns = []string{"BTC", "ETH", "SOL", "XRP", "DOGE", "ADA", "AVAX", "MATIC", "LINK", "DOT", "USDT", "USDC", "BINANCE:", "COINBASE:", "BITSTAMP:"}

	forexPatterns = []string{"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "AUDUSD", "USDCAD", "NZDUSD", "XAUUSD", "XAGUSD", "OANDA:", "FX:"}

	commodityPatterns = []string{"GOLD", "SILVER", "OIL", "USOIL", "UKOIL", "NATGAS", "COPPER", "WHEAT", "CORN", "TVC:", "COMEX:", "NYMEX:", "CL1!", "GC1!", "SI1!"}

	indexPatterns = []string{"SPX", "SPY", "QQQ", "NDX", "DJI", "VIX", "RUT", "IWM", "SP:", "DJ:", "NASDAQ:", "CBOE:"}
)

func matchesAny(t string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// ClassifyAsset maps a raw ticker (possibly exchange-prefixed, e.g.
// "BINANCE:BTCUSDT") to an asset class plus four search-query templates.
// Pure and deterministic; unmatched tickers fall through to EQUITY.
func ClassifyAsset(ticker string) Classification {
	t := strings.ToUpper(ticker)

	if matchesAny(t, cryptoPatterns) {
		return Classification{
			AssetClass: models.AssetCrypto,
			SearchQueries: []string{
				fmt.Sprintf("%s regulatory news SEC government today", ticker),
				"Crypto market sentiment Fear and Greed Index today",
				fmt.Sprintf("%s protocol upgrades or security issues last 7 days", ticker),
				"Bitcoin dominance trend and crypto market outlook today",
			},
		}
	}

	if matchesAny(t, forexPatterns) {
		pair := extractCurrencyPair(t)
		return Classification{
			AssetClass: models.AssetForex,
			SearchQueries: []string{
				fmt.Sprintf("Economic calendar high impact events %s next 48 hours", pair),
				"Central Bank interest rate decision Fed ECB BOJ latest",
				"Geopolitical news affecting currency markets today",
				fmt.Sprintf("%s technical outlook and analyst forecast today", pair),
			},
		}
	}

	if matchesAny(t, commodityPatterns) {
		return Classification{
			AssetClass: models.AssetCommodity,
			SearchQueries: []string{
				fmt.Sprintf("%s supply demand report inventory data today", ticker),
				"US Dollar Index DXY strength trend today",
				fmt.Sprintf("%s futures positioning COT report latest", ticker),
				"Geopolitical risks affecting commodity prices today",
			},
		}
	}

	if matchesAny(t, indexPatterns) {
		return Classification{
			AssetClass: models.AssetIndex,
			SearchQueries: []string{
				"VIX volatility index level and trend today",
				"US 10 Year Treasury yield trend today",
				"Stock market breadth advance decline line today",
				"S&P 500 sector performance leaders laggards today",
			},
		}
	}

	return Classification{
		AssetClass: models.AssetEquity,
		SearchQueries: []string{
			fmt.Sprintf("%s next earnings date and expectations", ticker),
			fmt.Sprintf("%s analyst upgrades downgrades last 7 days", ticker),
			fmt.Sprintf("%s institutional insider buying selling activity", ticker),
			fmt.Sprintf("%s major news headlines today", ticker),
		},
	}
}

// extractCurrencyPair expands well-known pair symbols into searchable form.
func extractCurrencyPair(t string) string {
	pairs := [][2]string{
		{"EURUSD", "EUR USD"},
		{"GBPUSD", "GBP USD"},
		{"USDJPY", "USD JPY"},
		{"USDCHF", "USD CHF"},
		{"AUDUSD", "AUD USD"},
		{"USDCAD", "USD CAD"},
		{"NZDUSD", "NZD USD"},
		{"XAUUSD", "Gold USD"},
		{"XAGUSD", "Silver USD"},
	}
	for _, p := range pairs {
		if strings.Contains(t, p[0]) {
			return p[1]
		}
	}
	return t
}
