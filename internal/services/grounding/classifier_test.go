package grounding

import (
	"testing"

	"github.com/chartproof/chartproof/internal/models"
)

func TestClassifyAsset(t *testing.T) {
	tests := []struct {
		ticker string
		want   models.AssetClass
	}{
		{"BTCUSD", models.AssetCrypto},
		{"BINANCE:ETHUSDT", models.AssetCrypto},
		{"EURUSD", models.AssetForex},
		{"OANDA:GBPUSD", models.AssetForex},
		{"USOIL", models.AssetCommodity},
		{"COMEX:GC1!", models.AssetCommodity},
		{"SPX", models.AssetIndex},
		{"QQQ", models.AssetIndex},
		{"AAPL", models.AssetEquity},
		{"TSLA", models.AssetEquity},
		{"", models.AssetEquity},
	}
	for _, tt := range tests {
		got := ClassifyAsset(tt.ticker)
		if got.AssetClass != tt.want {
			t.Errorf("ClassifyAsset(%q) = %s, want %s", tt.ticker, got.AssetClass, tt.want)
		}
		if len(got.SearchQueries) != 4 {
			t.Errorf("ClassifyAsset(%q) returned %d queries, want 4", tt.ticker, len(got.SearchQueries))
		}
	}
}

func TestClassifyAssetPriority(t *testing.T) {
	// Spot gold is listed as a forex pair and forex is checked before the
	// commodity patterns, so XAU routes to forex queries.
	if got := ClassifyAsset("XAUUSD"); got.AssetClass != models.AssetForex {
		t.Errorf("XAUUSD = %s, want FOREX (priority order)", got.AssetClass)
	}
	// A ticker containing both a crypto and an index marker classifies as
	// crypto: crypto is checked first.
	if got := ClassifyAsset("BTCSPX"); got.AssetClass != models.AssetCrypto {
		t.Errorf("BTCSPX = %s, want CRYPTO (priority order)", got.AssetClass)
	}
	// Index markers beat the equity fallback.
	if got := ClassifyAsset("NASDAQ:NDX"); got.AssetClass != models.AssetIndex {
		t.Errorf("NASDAQ:NDX = %s, want INDEX", got.AssetClass)
	}
}

func TestClassifyAssetDeterministic(t *testing.T) {
	first := ClassifyAsset("nvda")
	for i := 0; i < 5; i++ {
		again := ClassifyAsset("nvda")
		if again.AssetClass != first.AssetClass {
			t.Fatal("classification not deterministic")
		}
		for j := range first.SearchQueries {
			if again.SearchQueries[j] != first.SearchQueries[j] {
				t.Fatal("queries not deterministic")
			}
		}
	}
}

func TestExtractCurrencyPair(t *testing.T) {
	if got := extractCurrencyPair("OANDA:EURUSD"); got != "EUR USD" {
		t.Errorf("EURUSD pair = %q", got)
	}
	if got := extractCurrencyPair("XAUUSD"); got != "Gold USD" {
		t.Errorf("XAUUSD pair = %q", got)
	}
	if got := extractCurrencyPair("FX:SOMETHING"); got != "FX:SOMETHING" {
		t.Errorf("unknown pair should pass through, got %q", got)
	}
}
