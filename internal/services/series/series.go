// Package series turns annual facts into a year-indexed revenue / net income table
package series

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/models"
)

// Scales is the unit-scale table, highest threshold first. The first entry
// whose threshold does not exceed the table's largest magnitude wins.
type Scales []models.UnitScale

// DefaultScales returns Trillions at or above 1e12 and Billions otherwise.
func DefaultScales() Scales {
	return Scales{
		{Threshold: decimal.New(1, 12), Divisor: decimal.New(1, 12), Label: "Trillions"},
		{Threshold: decimal.Zero, Divisor: decimal.New(1, 9), Label: "Billions"},
	}
}

// ScalesFromConfig builds a table from the [[lookup.scales]] config rows.
func ScalesFromConfig(rows []common.ScaleConfig) Scales {
	if len(rows) == 0 {
		return DefaultScales()
	}
	scales := make(Scales, 0, len(rows))
	for _, r := range rows {
		scales = append(scales, models.UnitScale{
			Threshold: decimal.NewFromFloat(r.Threshold),
			Divisor:   decimal.NewFromFloat(r.Divisor),
			Label:     r.Label,
		})
	}
	slices.SortStableFunc(scales, func(a, b models.UnitScale) int {
		return b.Threshold.Cmp(a.Threshold)
	})
	return scales
}

// Pick returns the scale for a table whose largest absolute value is max.
// The last (smallest) entry is the fallback.
func (s Scales) Pick(max decimal.Decimal) models.UnitScale {
	if len(s) == 0 {
		s = DefaultScales()
	}
	for _, scale := range s {
		if max.GreaterThanOrEqual(scale.Threshold) {
			return scale
		}
	}
	return s[len(s)-1]
}

// ToYearlySeries attributes each fact to the calendar year of its period end
// and sums facts sharing a year. Result is ascending by year.
func ToYearlySeries(records []models.FinancialFact) []models.YearlySeriesPoint {
	sums := make(map[int]decimal.Decimal, len(records))
	for _, r := range records {
		year := r.End.Year()
		sums[year] = sums[year].Add(r.Value)
	}

	points := make([]models.YearlySeriesPoint, 0, len(sums))
	for year, total := range sums {
		points = append(points, models.YearlySeriesPoint{Year: year, Value: total})
	}
	slices.SortFunc(points, func(a, b models.YearlySeriesPoint) int {
		return a.Year - b.Year
	})
	return points
}

// Combine inner-joins the two series by year and applies one unit scale,
// chosen from the largest absolute value in either column, to both.
// An empty intersection yields an empty series together with ErrJoinEmpty.
func Combine(revenue, netIncome []models.YearlySeriesPoint, scales Scales) (models.CombinedSeries, error) {
	income := make(map[int]decimal.Decimal, len(netIncome))
	for _, p := range netIncome {
		income[p.Year] = p.Value
	}

	rows := make([]models.CombinedRow, 0, len(revenue))
	max := decimal.Zero
	for _, p := range revenue {
		ni, ok := income[p.Year]
		if !ok {
			continue
		}
		rows = append(rows, models.CombinedRow{Year: p.Year, Revenue: p.Value, NetIncome: ni})
		max = decimal.Max(max, p.Value.Abs(), ni.Abs())
	}
	slices.SortFunc(rows, func(a, b models.CombinedRow) int {
		return a.Year - b.Year
	})

	scale := scales.Pick(max)
	out := models.CombinedSeries{
		Rows:           rows,
		Scale:          scale,
		RevenueLabel:   Label("Revenue", scale),
		NetIncomeLabel: Label("NetIncome", scale),
	}

	if len(rows) == 0 {
		return out, fmt.Errorf("%w: revenue years %v, net income years %v",
			models.ErrJoinEmpty, years(revenue), years(netIncome))
	}

	for i := range out.Rows {
		out.Rows[i].Revenue = out.Rows[i].Revenue.Div(scale.Divisor)
		out.Rows[i].NetIncome = out.Rows[i].NetIncome.Div(scale.Divisor)
	}
	return out, nil
}

// Label renders a column header such as "Revenue (in Billions USD)".
func Label(measure string, scale models.UnitScale) string {
	return fmt.Sprintf("%s (in %s USD)", measure, scale.Label)
}

func years(points []models.YearlySeriesPoint) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Year
	}
	return out
}
