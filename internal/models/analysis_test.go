package models

import "testing"

func TestNormalizeGrade(t *testing.T) {
	tests := []struct {
		in       string
		fallback Grade
		want     Grade
	}{
		{"A+", GradeC, GradeAPlus},
		{"A", GradeC, GradeA},
		{"B", GradeC, GradeB},
		{"C", GradeA, GradeC},
		{"", GradeB, GradeB},
		{"A-", GradeC, GradeC},
		{"excellent", GradeA, GradeA},
	}
	for _, tt := range tests {
		if got := NormalizeGrade(tt.in, tt.fallback); got != tt.want {
			t.Errorf("NormalizeGrade(%q, %q) = %q, want %q", tt.in, tt.fallback, got, tt.want)
		}
	}
}

func TestCapGrade(t *testing.T) {
	tests := []struct {
		g       Grade
		ceiling Grade
		want    Grade
	}{
		{GradeAPlus, GradeB, GradeB},
		{GradeA, GradeB, GradeB},
		{GradeB, GradeB, GradeB},
		{GradeC, GradeB, GradeC}, // cap never raises a grade
		{GradeAPlus, GradeC, GradeC},
		{GradeA, GradeAPlus, GradeA},
	}
	for _, tt := range tests {
		if got := CapGrade(tt.g, tt.ceiling); got != tt.want {
			t.Errorf("CapGrade(%q, %q) = %q, want %q", tt.g, tt.ceiling, got, tt.want)
		}
	}
}

func TestDowngradeGrade(t *testing.T) {
	if got := DowngradeGrade(GradeAPlus, 1); got != GradeA {
		t.Errorf("A+ down 1 = %q, want A", got)
	}
	if got := DowngradeGrade(GradeA, 2); got != GradeC {
		t.Errorf("A down 2 = %q, want C", got)
	}
	// Floor at C.
	if got := DowngradeGrade(GradeC, 3); got != GradeC {
		t.Errorf("C down 3 = %q, want C", got)
	}
	if got := DowngradeGrade(GradeB, 0); got != GradeB {
		t.Errorf("B down 0 = %q, want B", got)
	}
}

func TestGroundingResultClone(t *testing.T) {
	days := 3
	orig := &GroundingResult{
		Ticker: "AAPL",
		Earnings: EarningsInfo{
			DaysUntil: &days,
		},
		Sentiment: SentimentInfo{
			RecentHeadlines: []string{"headline"},
		},
		GradeAdjustment: GradeAdjustment{OriginalGrade: GradeA, AdjustedGrade: GradeB},
	}

	clone := orig.Clone()
	clone.GradeAdjustment.OriginalGrade = GradeC
	*clone.Earnings.DaysUntil = 99
	clone.Sentiment.RecentHeadlines[0] = "changed"
	clone.Sentiment.RecentHeadlines = append(clone.Sentiment.RecentHeadlines, "extra")

	if orig.GradeAdjustment.OriginalGrade != GradeA {
		t.Error("clone mutation leaked into original grade adjustment")
	}
	if *orig.Earnings.DaysUntil != 3 {
		t.Error("clone mutation leaked into original days_until")
	}
	if len(orig.Sentiment.RecentHeadlines) != 1 {
		t.Error("clone append leaked into original headlines")
	}
}

func TestStrategyCatalog(t *testing.T) {
	if len(Strategies) != 14 {
		t.Fatalf("expected 14 strategies, got %d", len(Strategies))
	}
	if s := StrategyByID("SMC"); s == nil || s.Name != "Smart Money Concepts" {
		t.Error("SMC lookup failed")
	}
	if StrategyByID("NOPE") != nil {
		t.Error("unknown strategy should return nil")
	}
	if !IsValidStrategy("WYCKOFF") || IsValidStrategy("wyckoff") {
		t.Error("strategy IDs are case-sensitive")
	}
}
