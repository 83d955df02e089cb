// Package facts retrieves and filters annual financial facts for one concept
package facts

import (
	"context"
	"fmt"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/interfaces"
	"github.com/bobmcallan/shyft/internal/models"
)

// UnitUSD is the only unit considered; other currencies are ignored.
const UnitUSD = "USD"

// Fetcher reads one concept at a time through an SECClient.
type Fetcher struct {
	client   interfaces.SECClient
	taxonomy string
	logger   *common.Logger
}

// NewFetcher creates a Fetcher for the given taxonomy (normally "us-gaap").
func NewFetcher(client interfaces.SECClient, taxonomy string, logger *common.Logger) *Fetcher {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Fetcher{
		client:   client,
		taxonomy: taxonomy,
		logger:   logger,
	}
}

// FetchConcept returns up to opts.FinalCount distinct annual USD facts for a
// concept, most recent period end first.
func (f *Fetcher) FetchConcept(ctx context.Context, identifier, concept string, opts Options) ([]models.FinancialFact, error) {
	resp, err := f.client.GetCompanyConcept(ctx, identifier, f.taxonomy, concept)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for %s: %w", concept, identifier, err)
	}

	values, ok := resp.Units[UnitUSD]
	if !ok {
		return nil, fmt.Errorf("%w: %s unit not found for %s", models.ErrMalformedResponse, UnitUSD, concept)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no %s (%s) data found", models.ErrMalformedResponse, concept, UnitUSD)
	}

	selected, err := SelectAnnual(ToFacts(values), opts)
	if err != nil {
		return nil, fmt.Errorf("%s for %s: %w", concept, identifier, err)
	}

	f.logger.Debug().
		Str("identifier", identifier).
		Str("concept", concept).
		Int("reported", len(values)).
		Int("selected", len(selected)).
		Msg("Selected annual facts")

	return selected, nil
}
