// Package sec provides a client for the SEC EDGAR public data API
package sec

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/models"
)

const (
	DefaultTickersURL = "https://www.sec.gov/files/company_tickers.json"
	DefaultDataURL    = "https://data.sec.gov"
	DefaultTimeout    = 30 * time.Second

	// maxErrorBody bounds how much of a non-OK body is kept in APIError.
	maxErrorBody = 512
)

// Client implements the SECClient interface
type Client struct {
	userAgent  string
	tickersURL string
	dataURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL points both endpoints at one host, as used by test servers.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		base := strings.TrimRight(baseURL, "/")
		c.tickersURL = base + "/files/company_tickers.json"
		c.dataURL = base
	}
}

// WithTickersURL sets the company tickers snapshot URL. Empty keeps the default.
func WithTickersURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.tickersURL = u
		}
	}
}

// WithDataURL sets the data.sec.gov base URL. Empty keeps the default.
func WithDataURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.dataURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new SEC client. userAgent is sent on every request;
// the SEC requires it to identify the caller with a contact address.
func NewClient(userAgent string, opts ...ClientOption) *Client {
	c := &Client{
		userAgent:  userAgent,
		tickersURL: DefaultTickersURL,
		dataURL:    DefaultDataURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-OK response from the SEC
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("SEC API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Is reports every APIError as an upstream outage so callers can match the kind.
func (e *APIError) Is(target error) bool {
	return target == models.ErrUpstreamUnavailable
}

// get performs a GET request and decodes the JSON body into result
func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", endpoint).Msg("SEC API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Dur("elapsed", elapsed).Msg("SEC API request failed")
		return fmt.Errorf("%w: request %s: %w", models.ErrUpstreamUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn().Str("url", endpoint).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("SEC API non-OK response")
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode %s: %v", models.ErrMalformedResponse, endpoint, err)
	}

	return nil
}

// tickerEntry is one value of the company_tickers.json object
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// GetEntitySnapshot retrieves company_tickers.json. The document is an
// object keyed "0", "1", ...; records are returned in key order.
func (c *Client) GetEntitySnapshot(ctx context.Context) (models.EntitySnapshot, error) {
	var raw map[string]tickerEntry
	if err := c.get(ctx, c.tickersURL, &raw); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	snapshot := make(models.EntitySnapshot, 0, len(raw))
	for _, k := range keys {
		e := raw[k]
		snapshot = append(snapshot, models.EntityRecord{
			Name:       e.Title,
			Ticker:     e.Ticker,
			Identifier: e.CIK,
		})
	}

	c.logger.Debug().Int("entities", len(snapshot)).Msg("Loaded SEC entity snapshot")

	return snapshot, nil
}

// compareKeys orders numeric keys numerically and anything else after them.
func compareKeys(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// GetCompanyConcept retrieves /api/xbrl/companyconcept/{identifier}/{taxonomy}/{concept}.json
func (c *Client) GetCompanyConcept(ctx context.Context, identifier, taxonomy, concept string) (*models.ConceptResponse, error) {
	endpoint := fmt.Sprintf("%s/api/xbrl/companyconcept/%s/%s/%s.json",
		c.dataURL, url.PathEscape(identifier), url.PathEscape(taxonomy), url.PathEscape(concept))

	var resp models.ConceptResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
