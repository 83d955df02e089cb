package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConceptResponse is the decoded companyconcept document for one
// (identifier, concept) pair. Units is keyed by unit of measure ("USD", ...).
type ConceptResponse struct {
	CIK         int64                     `json:"cik"`
	Taxonomy    string                    `json:"taxonomy"`
	Tag         string                    `json:"tag"`
	Label       string                    `json:"label"`
	Description string                    `json:"description"`
	EntityName  string                    `json:"entityName"`
	Units       map[string][]ConceptValue `json:"units"`
}

// ConceptValue is a single reported value exactly as the API returns it.
type ConceptValue struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Val   decimal.Decimal `json:"val"`
	Accn  string          `json:"accn"`
	FY    int             `json:"fy"`
	FP    string          `json:"fp"`
	Form  string          `json:"form"`
	Filed string          `json:"filed"`
	Frame string          `json:"frame,omitempty"`
}

// FinancialFact is one reported data point for a concept with parsed dates.
// Start and End are zero when the raw strings did not parse.
type FinancialFact struct {
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	StartRaw     string          `json:"start_raw"`
	EndRaw       string          `json:"end_raw"`
	Value        decimal.Decimal `json:"value"`
	Form         string          `json:"form"`
	FiscalPeriod string          `json:"fiscal_period"`
	FiscalYear   int             `json:"fiscal_year"`
	Accession    string          `json:"accession"`
	Filed        string          `json:"filed"`
	Frame        string          `json:"frame,omitempty"`
}

// PeriodKey identifies a reporting period; duplicate filings share one.
func (f FinancialFact) PeriodKey() [2]string {
	return [2]string{f.StartRaw, f.EndRaw}
}

// YearlySeriesPoint is one concept's value attributed to the calendar year
// of its period end.
type YearlySeriesPoint struct {
	Year  int             `json:"year"`
	Value decimal.Decimal `json:"value"`
}

// UnitScale is the display unit chosen for a combined table.
type UnitScale struct {
	Threshold decimal.Decimal `json:"threshold"`
	Divisor   decimal.Decimal `json:"divisor"`
	Label     string          `json:"label"`
}

// CombinedRow holds both concepts for one year, already divided by the scale.
type CombinedRow struct {
	Year      int             `json:"year"`
	Revenue   decimal.Decimal `json:"revenue"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// CombinedSeries is the inner join of revenue and net income by year,
// ascending, with a single unit scale applied to both columns.
type CombinedSeries struct {
	Rows           []CombinedRow `json:"rows"`
	Scale          UnitScale     `json:"scale"`
	RevenueLabel   string        `json:"revenue_label"`
	NetIncomeLabel string        `json:"net_income_label"`
}

// Years returns the years present in the table in order.
func (c CombinedSeries) Years() []int {
	years := make([]int, len(c.Rows))
	for i, r := range c.Rows {
		years[i] = r.Year
	}
	return years
}

// FinancialsReport is what a completed lookup hands to the presentation layer.
type FinancialsReport struct {
	Identifier       string          `json:"identifier"`
	Ticker           string          `json:"ticker,omitempty"`
	RevenueConcept   string          `json:"revenue_concept"`
	NetIncomeConcept string          `json:"net_income_concept"`
	Revenue          []FinancialFact `json:"-"`
	NetIncome        []FinancialFact `json:"-"`
	Series           CombinedSeries  `json:"series"`
	FetchedAt        time.Time       `json:"fetched_at"`
}
