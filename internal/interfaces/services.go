package interfaces

import (
	"context"

	"github.com/bobmcallan/shyft/internal/models"
)

// LookupService resolves companies and builds revenue / net income reports
type LookupService interface {
	// SearchCompany returns every ticker whose registrant title contains name
	SearchCompany(ctx context.Context, name string) ([]string, error)

	// ResolveTicker returns the "CIK##########" identifier for an exact ticker
	ResolveTicker(ctx context.Context, ticker string) (string, error)

	// GetFinancials fetches both concepts for an identifier and combines them
	GetFinancials(ctx context.Context, identifier string) (*models.FinancialsReport, error)

	// GetFinancialsByTicker resolves the ticker then calls GetFinancials
	GetFinancialsByTicker(ctx context.Context, ticker string) (*models.FinancialsReport, error)
}
