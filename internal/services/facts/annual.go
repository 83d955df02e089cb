package facts

import (
	"fmt"
	"slices"
	"time"

	"github.com/bobmcallan/shyft/internal/models"
)

// dateLayout is the XBRL frames date format.
const dateLayout = "2006-01-02"

const (
	FormAnnualReport = "10-K"
	FiscalPeriodFull = "FY"
)

// Options controls how many facts survive selection.
type Options struct {
	FetchCount   int // facts considered after sorting, before dedup
	FinalCount   int // distinct periods returned
	FullYearDays int // minimum period length of an annual fact
}

// DefaultOptions returns 30 / 10 / 300.
func DefaultOptions() Options {
	return Options{
		FetchCount:   30,
		FinalCount:   10,
		FullYearDays: 300,
	}
}

// ToFacts parses raw concept values. Unparseable dates leave zero times so
// the value is dropped by the full-year filter without failing the batch.
func ToFacts(values []models.ConceptValue) []models.FinancialFact {
	out := make([]models.FinancialFact, 0, len(values))
	for _, v := range values {
		f := models.FinancialFact{
			StartRaw:     v.Start,
			EndRaw:       v.End,
			Value:        v.Val,
			Form:         v.Form,
			FiscalPeriod: v.FP,
			FiscalYear:   v.FY,
			Accession:    v.Accn,
			Filed:        v.Filed,
			Frame:        v.Frame,
		}
		f.Start, _ = time.Parse(dateLayout, v.Start)
		f.End, _ = time.Parse(dateLayout, v.End)
		out = append(out, f)
	}
	return out
}

// IsFullYear reports whether the fact spans at least minDays. Facts with
// missing dates never qualify.
func IsFullYear(f models.FinancialFact, minDays int) bool {
	if f.Start.IsZero() || f.End.IsZero() {
		return false
	}
	return f.End.Sub(f.Start) >= time.Duration(minDays)*24*time.Hour
}

// isAnnual is the 10-K / FY / full-year predicate.
func isAnnual(f models.FinancialFact, minDays int) bool {
	return f.Form == FormAnnualReport && f.FiscalPeriod == FiscalPeriodFull && IsFullYear(f, minDays)
}

// SelectAnnual keeps annual facts, orders them most recent end first, takes
// FetchCount of them and then keeps the first fact of each (start, end)
// period until FinalCount periods are collected.
func SelectAnnual(facts []models.FinancialFact, opts Options) ([]models.FinancialFact, error) {
	annual := make([]models.FinancialFact, 0, len(facts))
	for _, f := range facts {
		if isAnnual(f, opts.FullYearDays) {
			annual = append(annual, f)
		}
	}
	if len(annual) == 0 {
		return nil, fmt.Errorf("%w: no %s full-year facts", models.ErrNoAnnualData, FormAnnualReport)
	}

	slices.SortStableFunc(annual, func(a, b models.FinancialFact) int {
		return b.End.Compare(a.End)
	})
	if opts.FetchCount > 0 && len(annual) > opts.FetchCount {
		annual = annual[:opts.FetchCount]
	}

	finalCount := opts.FinalCount
	if finalCount <= 0 {
		finalCount = DefaultOptions().FinalCount
	}

	seen := make(map[[2]string]struct{}, len(annual))
	unique := make([]models.FinancialFact, 0, finalCount)
	for _, f := range annual {
		key := f.PeriodKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, f)
		if len(unique) == finalCount {
			break
		}
	}

	return unique, nil
}
