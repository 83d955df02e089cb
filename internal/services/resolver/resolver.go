// Package resolver maps company names and tickers to SEC registrant identifiers
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bobmcallan/shyft/internal/models"
)

// identifierPrefix is the literal prefix of every formatted CIK.
const identifierPrefix = "CIK"

// Synonyms maps a lower-cased popular name to the registrant name it stands for.
type Synonyms map[string]string

// DefaultSynonyms returns a fresh copy of the built-in alias table.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		"google": "alphabet inc",
		"nvidia": "nvidia corporation",
	}
}

// Resolver performs name and ticker resolution against an entity snapshot.
type Resolver struct {
	synonyms Synonyms
}

// New creates a Resolver. A nil table means no aliasing.
func New(synonyms Synonyms) *Resolver {
	normalized := make(Synonyms, len(synonyms))
	for k, v := range synonyms {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Resolver{synonyms: normalized}
}

// Canonical applies synonym substitution to a free-text name.
func (r *Resolver) Canonical(name string) string {
	if alias, ok := r.synonyms[strings.ToLower(strings.TrimSpace(name))]; ok {
		return alias
	}
	return name
}

// ResolveByName returns the ticker of every record whose title contains the
// (alias-substituted) name, compared upper-cased. Order follows the snapshot.
// No ranking is applied; the caller lets the user pick.
func (r *Resolver) ResolveByName(name string, snapshot models.EntitySnapshot) []string {
	needle := strings.ToUpper(strings.TrimSpace(r.Canonical(name)))
	if needle == "" {
		return nil
	}

	var tickers []string
	for _, rec := range snapshot {
		if strings.Contains(strings.ToUpper(rec.Name), needle) {
			tickers = append(tickers, rec.Ticker)
		}
	}
	return tickers
}

// ResolveTickerToIdentifier returns the formatted identifier for an exact,
// case-insensitive ticker match, or "" when the ticker is unknown.
func (r *Resolver) ResolveTickerToIdentifier(ticker string, snapshot models.EntitySnapshot) string {
	want := strings.ToUpper(strings.TrimSpace(ticker))
	if want == "" {
		return ""
	}
	for _, rec := range snapshot {
		if strings.ToUpper(rec.Ticker) == want {
			return FormatIdentifier(rec.Identifier)
		}
	}
	return ""
}

// FormatIdentifier renders a numeric CIK as "CIK" plus ten zero-padded digits.
func FormatIdentifier(cik int64) string {
	return fmt.Sprintf("%s%010d", identifierPrefix, cik)
}

// NormalizeIdentifier accepts "320193", "0000320193" or "CIK0000320193"
// and returns the canonical "CIK0000320193" form.
func NormalizeIdentifier(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= len(identifierPrefix) && strings.EqualFold(s[:len(identifierPrefix)], identifierPrefix) {
		s = s[len(identifierPrefix):]
	}
	if s == "" || len(s) > 10 {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidIdentifier, raw)
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return "", fmt.Errorf("%w: %q", models.ErrInvalidIdentifier, raw)
		}
	}
	cik, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidIdentifier, raw)
	}
	return FormatIdentifier(cik), nil
}
