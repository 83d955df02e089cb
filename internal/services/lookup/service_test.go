package lookup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/models"
)

// mockSECClient serves a fixed snapshot and per-concept responses.
type mockSECClient struct {
	snapshot    models.EntitySnapshot
	snapshotErr error
	concepts    map[string]*models.ConceptResponse
	conceptErrs map[string]error

	snapshotCalls int
	conceptCalls  []string
}

func (m *mockSECClient) GetEntitySnapshot(_ context.Context) (models.EntitySnapshot, error) {
	m.snapshotCalls++
	return m.snapshot, m.snapshotErr
}

func (m *mockSECClient) GetCompanyConcept(_ context.Context, identifier, _, concept string) (*models.ConceptResponse, error) {
	m.conceptCalls = append(m.conceptCalls, identifier+"/"+concept)
	if err, ok := m.conceptErrs[concept]; ok {
		return nil, err
	}
	if resp, ok := m.concepts[concept]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("%w: status 404", models.ErrUpstreamUnavailable)
}

func annual(year int, val int64) models.ConceptValue {
	return models.ConceptValue{
		Start: fmt.Sprintf("%d-01-01", year),
		End:   fmt.Sprintf("%d-12-31", year),
		Val:   decimal.NewFromInt(val),
		Form:  "10-K",
		FP:    "FY",
		FY:    year,
	}
}

func usd(values ...models.ConceptValue) *models.ConceptResponse {
	return &models.ConceptResponse{Units: map[string][]models.ConceptValue{"USD": values}}
}

func testConfig() common.LookupConfig {
	return common.NewDefaultConfig().Lookup
}

func newAppleClient() *mockSECClient {
	cfg := testConfig()
	return &mockSECClient{
		snapshot: models.EntitySnapshot{
			{Name: "Apple Inc.", Ticker: "AAPL", Identifier: 320193},
			{Name: "Alphabet Inc.", Ticker: "GOOGL", Identifier: 1652044},
			{Name: "Apple Hospitality REIT, Inc.", Ticker: "APLE", Identifier: 1418121},
		},
		concepts: map[string]*models.ConceptResponse{
			cfg.RevenueConcept: usd(
				annual(2021, 365817000000),
				annual(2022, 394328000000),
				annual(2023, 383285000000),
			),
			cfg.NetIncomeConcept: usd(
				annual(2021, 94680000000),
				annual(2022, 99803000000),
				annual(2023, 96995000000),
			),
		},
	}
}

func TestGetFinancials_EndToEnd(t *testing.T) {
	client := newAppleClient()
	svc := NewService(client, testConfig(), nil)

	report, err := svc.GetFinancials(context.Background(), "CIK0000320193")
	require.NoError(t, err)

	assert.Equal(t, "CIK0000320193", report.Identifier)
	assert.Equal(t, []int{2021, 2022, 2023}, report.Series.Years())
	assert.Equal(t, "Billions", report.Series.Scale.Label)
	assert.Equal(t, "Revenue (in Billions USD)", report.Series.RevenueLabel)
	assert.Equal(t, "NetIncome (in Billions USD)", report.Series.NetIncomeLabel)
	assert.True(t, report.Series.Rows[0].Revenue.Equal(decimal.RequireFromString("365.817")))
	assert.True(t, report.Series.Rows[2].NetIncome.Equal(decimal.RequireFromString("96.995")))

	// Revenue is always fetched before net income, once each
	cfg := testConfig()
	assert.Equal(t, []string{
		"CIK0000320193/" + cfg.RevenueConcept,
		"CIK0000320193/" + cfg.NetIncomeConcept,
	}, client.conceptCalls)
	assert.Zero(t, client.snapshotCalls, "identifier mode skips the snapshot")
}

func TestGetFinancials_NormalizesIdentifier(t *testing.T) {
	client := newAppleClient()
	svc := NewService(client, testConfig(), nil)

	report, err := svc.GetFinancials(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "CIK0000320193", report.Identifier)
}

func TestGetFinancials_InvalidIdentifier(t *testing.T) {
	client := newAppleClient()
	svc := NewService(client, testConfig(), nil)

	_, err := svc.GetFinancials(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidIdentifier))
	assert.Empty(t, client.conceptCalls)
}

func TestGetFinancials_BothConceptErrorsReported(t *testing.T) {
	cfg := testConfig()
	client := newAppleClient()
	client.concepts = nil
	client.conceptErrs = map[string]error{
		cfg.RevenueConcept:   fmt.Errorf("%w: status 404", models.ErrUpstreamUnavailable),
		cfg.NetIncomeConcept: fmt.Errorf("%w: bad json", models.ErrMalformedResponse),
	}
	svc := NewService(client, cfg, nil)

	_, err := svc.GetFinancials(context.Background(), "CIK0000320193")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUpstreamUnavailable))
	assert.True(t, errors.Is(err, models.ErrMalformedResponse))
	assert.Contains(t, err.Error(), cfg.RevenueConcept)
	assert.Contains(t, err.Error(), cfg.NetIncomeConcept)
	assert.Len(t, client.conceptCalls, 2, "no retries")
}

func TestGetFinancials_OneConceptWithoutAnnualData(t *testing.T) {
	cfg := testConfig()
	client := newAppleClient()
	client.concepts[cfg.NetIncomeConcept] = usd(models.ConceptValue{
		Start: "2023-07-01", End: "2023-09-30", Val: decimal.NewFromInt(1), Form: "10-Q", FP: "Q3",
	})
	svc := NewService(client, cfg, nil)

	_, err := svc.GetFinancials(context.Background(), "CIK0000320193")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoAnnualData))
}

func TestGetFinancials_EmptyJoin(t *testing.T) {
	cfg := testConfig()
	client := newAppleClient()
	client.concepts[cfg.NetIncomeConcept] = usd(annual(2015, 1000000000))
	svc := NewService(client, cfg, nil)

	_, err := svc.GetFinancials(context.Background(), "CIK0000320193")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrJoinEmpty))
}

func TestGetFinancialsByTicker(t *testing.T) {
	client := newAppleClient()
	svc := NewService(client, testConfig(), nil)

	report, err := svc.GetFinancialsByTicker(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", report.Ticker)
	assert.Equal(t, "CIK0000320193", report.Identifier)
	assert.Equal(t, 1, client.snapshotCalls)
}

func TestResolveTicker_NoMatch(t *testing.T) {
	svc := NewService(newAppleClient(), testConfig(), nil)

	_, err := svc.ResolveTicker(context.Background(), "AAP")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoMatch))

	_, err = svc.ResolveTicker(context.Background(), " ")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestSearchCompany(t *testing.T) {
	client := newAppleClient()
	svc := NewService(client, testConfig(), nil)

	tickers, err := svc.SearchCompany(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "APLE"}, tickers)

	tickers, err = svc.SearchCompany(context.Background(), "Google")
	require.NoError(t, err)
	assert.Equal(t, []string{"GOOGL"}, tickers)

	// Snapshot is not cached between calls
	assert.Equal(t, 2, client.snapshotCalls)
}

func TestSearchCompany_NoMatchAndBlank(t *testing.T) {
	svc := NewService(newAppleClient(), testConfig(), nil)

	_, err := svc.SearchCompany(context.Background(), "Berkshire")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoMatch))

	_, err = svc.SearchCompany(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestSearchCompany_SnapshotFailureIsNoMatch(t *testing.T) {
	client := newAppleClient()
	client.snapshotErr = fmt.Errorf("%w: dial tcp", models.ErrUpstreamUnavailable)
	svc := NewService(client, testConfig(), nil)

	_, err := svc.SearchCompany(context.Background(), "apple")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoMatch))
	assert.True(t, errors.Is(err, models.ErrUpstreamUnavailable), "cause is preserved")
}

func TestNewService_ConfigTablesAreUsed(t *testing.T) {
	cfg := testConfig()
	cfg.Synonyms = map[string]string{"Fruit": "apple inc"}
	cfg.Scales = []common.ScaleConfig{{Threshold: 0, Divisor: 1e6, Label: "Millions"}}
	cfg.FinalCount = 2
	svc := NewService(newAppleClient(), cfg, nil)

	tickers, err := svc.SearchCompany(context.Background(), "fruit")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)

	report, err := svc.GetFinancials(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "Millions", report.Series.Scale.Label)
	assert.Equal(t, []int{2022, 2023}, report.Series.Years(), "final count keeps the two most recent")
}
