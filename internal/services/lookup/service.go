// Package lookup wires the resolver, fetcher, and normalizer into one
// revenue / net income lookup.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/interfaces"
	"github.com/bobmcallan/shyft/internal/models"
	"github.com/bobmcallan/shyft/internal/services/facts"
	"github.com/bobmcallan/shyft/internal/services/resolver"
	"github.com/bobmcallan/shyft/internal/services/series"
)

// Service implements LookupService on top of an SECClient.
// Nothing is cached: the snapshot is fetched on every name or ticker lookup.
type Service struct {
	client   interfaces.SECClient
	resolver *resolver.Resolver
	fetcher  *facts.Fetcher
	scales   series.Scales
	opts     facts.Options
	config   common.LookupConfig
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a lookup service from the [lookup] config section.
func NewService(client interfaces.SECClient, config common.LookupConfig, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	synonyms := resolver.Synonyms(config.Synonyms)
	if synonyms == nil {
		synonyms = resolver.DefaultSynonyms()
	}

	if config.Taxonomy == "" {
		config.Taxonomy = "us-gaap"
	}

	opts := facts.DefaultOptions()
	if config.FetchCount > 0 {
		opts.FetchCount = config.FetchCount
	}
	if config.FinalCount > 0 {
		opts.FinalCount = config.FinalCount
	}
	if config.FullYearDays > 0 {
		opts.FullYearDays = config.FullYearDays
	}

	return &Service{
		client:   client,
		resolver: resolver.New(synonyms),
		fetcher:  facts.NewFetcher(client, config.Taxonomy, logger),
		scales:   series.ScalesFromConfig(config.Scales),
		opts:     opts,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// snapshot loads the registrant list. A failed load is reported as no match
// while keeping the cause in the chain.
func (s *Service) snapshot(ctx context.Context) (models.EntitySnapshot, error) {
	snap, err := s.client.GetEntitySnapshot(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Entity snapshot unavailable")
		return nil, fmt.Errorf("%w: entity snapshot unavailable: %w", models.ErrNoMatch, err)
	}
	return snap, nil
}

// SearchCompany returns the tickers of every registrant whose title contains name.
func (s *Service) SearchCompany(ctx context.Context, name string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: company name is required", models.ErrInvalidInput)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tickers := s.resolver.ResolveByName(name, snap)
	s.logger.Info().Str("query", name).Int("matches", len(tickers)).Msg("Company search")
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: no company matching %q", models.ErrNoMatch, name)
	}
	return tickers, nil
}

// ResolveTicker maps an exact ticker to its CIK identifier.
func (s *Service) ResolveTicker(ctx context.Context, ticker string) (string, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return "", fmt.Errorf("%w: ticker is required", models.ErrInvalidInput)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	identifier := s.resolver.ResolveTickerToIdentifier(ticker, snap)
	if identifier == "" {
		return "", fmt.Errorf("%w: ticker %s not found", models.ErrNoMatch, strings.ToUpper(ticker))
	}
	return identifier, nil
}

// GetFinancials fetches revenue then net income for an identifier and
// combines them into one scaled yearly table. When both concepts fail the
// returned error carries both causes.
func (s *Service) GetFinancials(ctx context.Context, identifier string) (*models.FinancialsReport, error) {
	id, err := resolver.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	return s.getFinancials(ctx, id, "")
}

// GetFinancialsByTicker resolves the ticker and then fetches its financials.
func (s *Service) GetFinancialsByTicker(ctx context.Context, ticker string) (*models.FinancialsReport, error) {
	id, err := s.ResolveTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.getFinancials(ctx, id, strings.ToUpper(strings.TrimSpace(ticker)))
}

func (s *Service) getFinancials(ctx context.Context, id, ticker string) (*models.FinancialsReport, error) {
	start := s.now()

	revenue, revErr := s.fetcher.FetchConcept(ctx, id, s.config.RevenueConcept, s.opts)
	netIncome, niErr := s.fetcher.FetchConcept(ctx, id, s.config.NetIncomeConcept, s.opts)
	if err := errors.Join(revErr, niErr); err != nil {
		s.logger.Warn().Str("identifier", id).Err(err).Msg("Financials lookup failed")
		return nil, err
	}

	combined, err := series.Combine(series.ToYearlySeries(revenue), series.ToYearlySeries(netIncome), s.scales)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	s.logger.Info().
		Str("identifier", id).
		Str("ticker", ticker).
		Int("years", len(combined.Rows)).
		Str("scale", combined.Scale.Label).
		Dur("elapsed", s.now().Sub(start)).
		Msg("Financials lookup")

	return &models.FinancialsReport{
		Identifier:       id,
		Ticker:           ticker,
		RevenueConcept:   s.config.RevenueConcept,
		NetIncomeConcept: s.config.NetIncomeConcept,
		Revenue:          revenue,
		NetIncome:        netIncome,
		Series:           combined,
		FetchedAt:        start,
	}, nil
}
