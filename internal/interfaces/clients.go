// Package interfaces defines service contracts for Shyft
package interfaces

import (
	"context"

	"github.com/bobmcallan/shyft/internal/models"
)

// SECClient provides access to the SEC EDGAR public data endpoints
type SECClient interface {
	// GetEntitySnapshot retrieves the full company tickers snapshot
	GetEntitySnapshot(ctx context.Context) (models.EntitySnapshot, error)

	// GetCompanyConcept retrieves every reported value of one concept for a
	// registrant. identifier is the "CIK##########" form.
	GetCompanyConcept(ctx context.Context, identifier, taxonomy, concept string) (*models.ConceptResponse, error)
}
