// Package render produces shareable PNG artifacts from analysis reports.
package render

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/chartproof/chartproof/internal/models"
)

// gradeColors shade the scorecard bars by final grade.
var gradeColors = map[models.Grade]string{
	models.GradeAPlus: "16a34a", // green-600
	models.GradeA:     "22c55e", // green-500
	models.GradeB:     "eab308", // yellow-500
	models.GradeC:     "dc2626", // red-600
}

// RenderScorecard renders the five sub-scores of a report as a PNG bar
// chart, colored by the final grade. Returns raw PNG bytes.
func RenderScorecard(report *models.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	g := report.Data.Grading
	hex, ok := gradeColors[report.Grade]
	if !ok {
		hex = gradeColors[models.GradeC]
	}
	barStyle := chart.Style{
		FillColor:   drawing.ColorFromHex(hex),
		StrokeColor: drawing.ColorFromHex(hex),
		StrokeWidth: 0,
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("%s - %s (Grade %s)", report.Ticker, report.Strategy, report.Grade),
		Width:  720,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: []chart.Value{
			{Label: "Visual", Value: float64(g.VisualScore), Style: barStyle},
			{Label: "Data", Value: float64(g.DataScore), Style: barStyle},
			{Label: "Sentiment", Value: float64(g.SentimentScore), Style: barStyle},
			{Label: "Risk/Reward", Value: float64(g.RiskRewardScore), Style: barStyle},
			{Label: "Momentum", Value: float64(g.MomentumScore), Style: barStyle},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("scorecard render failed: %w", err)
	}

	return buf.Bytes(), nil
}
