// Package report renders a financials lookup as markdown or as a PNG chart
package report

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/shyft/internal/models"
)

// FormatMarkdown renders the combined revenue / net income table.
func FormatMarkdown(report *models.FinancialsReport) string {
	var sb strings.Builder

	title := report.Identifier
	if report.Ticker != "" {
		title = fmt.Sprintf("%s (%s)", report.Ticker, report.Identifier)
	}
	sb.WriteString(fmt.Sprintf("# Revenue vs Net Income: %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**Revenue concept:** %s\n", report.RevenueConcept))
	sb.WriteString(fmt.Sprintf("**Net income concept:** %s\n", report.NetIncomeConcept))
	if !report.FetchedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("**Fetched:** %s\n", report.FetchedAt.Format("2006-01-02 15:04")))
	}
	sb.WriteString("\n")

	sb.WriteString(FormatTable(report.Series))
	return sb.String()
}

// FormatTable renders just the year table with its unit labels.
func FormatTable(series models.CombinedSeries) string {
	if len(series.Rows) == 0 {
		return "No overlapping years for revenue and net income.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("| Year | %s | %s |\n", series.RevenueLabel, series.NetIncomeLabel))
	sb.WriteString("|------|------|------|\n")
	for _, r := range series.Rows {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", r.Year, r.Revenue.StringFixed(2), r.NetIncome.StringFixed(2)))
	}
	return sb.String()
}
