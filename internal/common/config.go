// Package common provides shared utilities for Shyft
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Shyft
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Lookup      LookupConfig  `toml:"lookup"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	SEC SECConfig `toml:"sec"`
}

// SECConfig holds SEC EDGAR API configuration.
// UserAgent is mandatory upstream; the SEC rejects requests without a contact string.
type SECConfig struct {
	UserAgent  string `toml:"user_agent"`
	TickersURL string `toml:"tickers_url"`
	DataURL    string `toml:"data_url"`
	Timeout    string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *SECConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LookupConfig holds the fetch/normalize parameters and the swappable lookup tables.
type LookupConfig struct {
	Taxonomy         string            `toml:"taxonomy"`
	RevenueConcept   string            `toml:"revenue_concept"`
	NetIncomeConcept string            `toml:"net_income_concept"`
	FetchCount       int               `toml:"fetch_count"`
	FinalCount       int               `toml:"final_count"`
	FullYearDays     int               `toml:"full_year_days"`
	Synonyms         map[string]string `toml:"synonyms"`
	Scales           []ScaleConfig     `toml:"scales"`
}

// ScaleConfig is one row of the unit-scale table: values whose maximum
// absolute magnitude is at least Threshold are divided by Divisor.
type ScaleConfig struct {
	Threshold float64 `toml:"threshold"`
	Divisor   float64 `toml:"divisor"`
	Label     string  `toml:"label"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			SEC: SECConfig{
				UserAgent:  "Shyft (contact@example.com)",
				TickersURL: "https://www.sec.gov/files/company_tickers.json",
				DataURL:    "https://data.sec.gov",
				Timeout:    "30s",
			},
		},
		Lookup: LookupConfig{
			Taxonomy:         "us-gaap",
			RevenueConcept:   "RevenueFromContractWithCustomerExcludingAssessedTax",
			NetIncomeConcept: "NetIncomeLoss",
			FetchCount:       30,
			FinalCount:       10,
			FullYearDays:     300,
			Synonyms: map[string]string{
				"google": "alphabet inc",
				"nvidia": "nvidia corporation",
			},
			Scales: []ScaleConfig{
				{Threshold: 1e12, Divisor: 1e12, Label: "Trillions"},
				{Threshold: 0, Divisor: 1e9, Label: "Billions"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// A .env file in the working directory is loaded before overrides are applied.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		// Lookup tables in a file replace the previous tables rather than extending them
		var tables struct {
			Lookup struct {
				Synonyms map[string]string `toml:"synonyms"`
				Scales   []ScaleConfig     `toml:"scales"`
			} `toml:"lookup"`
		}
		if err := toml.Unmarshal(data, &tables); err == nil {
			if hasLookupKey(data, "synonyms") {
				config.Lookup.Synonyms = tables.Lookup.Synonyms
				if config.Lookup.Synonyms == nil {
					config.Lookup.Synonyms = map[string]string{}
				}
			}
			if len(tables.Lookup.Scales) > 0 {
				config.Lookup.Scales = tables.Lookup.Scales
			}
		}
	}

	// Missing .env is normal outside local development
	_ = godotenv.Load()

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// hasLookupKey reports whether the [lookup] table of a TOML document sets key.
func hasLookupKey(data []byte, key string) bool {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return false
	}
	lookup, ok := doc["lookup"].(map[string]interface{})
	if !ok {
		return false
	}
	_, ok = lookup[key]
	return ok
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SHYFT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("SHYFT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("SHYFT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("SHYFT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if ua := os.Getenv("SHYFT_USER_AGENT"); ua != "" {
		config.Clients.SEC.UserAgent = ua
	}

	if timeout := os.Getenv("SHYFT_SEC_TIMEOUT"); timeout != "" {
		config.Clients.SEC.Timeout = timeout
	}
}

// Validate checks the lookup parameters that would otherwise produce
// silently empty results.
func (c *Config) Validate() error {
	l := c.Lookup
	if l.FetchCount <= 0 || l.FinalCount <= 0 {
		return fmt.Errorf("lookup.fetch_count and lookup.final_count must be positive (got %d, %d)", l.FetchCount, l.FinalCount)
	}
	if l.FullYearDays <= 0 {
		return fmt.Errorf("lookup.full_year_days must be positive (got %d)", l.FullYearDays)
	}
	if len(l.Scales) == 0 {
		return fmt.Errorf("lookup.scales must contain at least one entry")
	}
	for _, s := range l.Scales {
		if s.Divisor <= 0 {
			return fmt.Errorf("lookup.scales divisor for %q must be positive", s.Label)
		}
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
