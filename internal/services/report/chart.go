package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/shyft/internal/models"
)

const (
	barWidth   = 28
	barSpacing = 6
	yearGap    = 24
)

var (
	revenueColor   = drawing.ColorFromHex("2563eb") // blue-600
	netIncomeColor = drawing.ColorFromHex("16a34a") // green-600
)

// RenderChart renders a grouped bar chart: for each year a revenue bar
// followed by a net income bar. Returns raw PNG bytes.
func RenderChart(series models.CombinedSeries) ([]byte, error) {
	if len(series.Rows) == 0 {
		return nil, fmt.Errorf("no rows to chart")
	}

	bars := make([]chart.Value, 0, 2*len(series.Rows))
	low, high := 0.0, 0.0
	for _, r := range series.Rows {
		rev := r.Revenue.InexactFloat64()
		ni := r.NetIncome.InexactFloat64()
		low = math.Min(low, math.Min(rev, ni))
		high = math.Max(high, math.Max(rev, ni))

		bars = append(bars,
			chart.Value{
				Label: strconv.Itoa(r.Year),
				Value: rev,
				Style: chart.Style{FillColor: revenueColor, StrokeColor: revenueColor},
			},
			chart.Value{
				Value: ni,
				Style: chart.Style{FillColor: netIncomeColor, StrokeColor: netIncomeColor},
			},
		)
	}
	if high == low {
		high = low + 1
	}
	pad := (high - low) * 0.05

	graph := chart.BarChart{
		Title:  fmt.Sprintf("%s (blue) vs %s (green)", series.RevenueLabel, series.NetIncomeLabel),
		Width:  chartWidth(len(series.Rows)),
		Height: 420,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: low - pad, Max: high + pad},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 1, 64)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func chartWidth(years int) int {
	w := years*(2*(barWidth+barSpacing)+yearGap) + 160
	return max(w, 480)
}
