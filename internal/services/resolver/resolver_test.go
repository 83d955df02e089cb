package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/shyft/internal/models"
)

func testSnapshot() models.EntitySnapshot {
	return models.EntitySnapshot{
		{Name: "Apple Inc.", Ticker: "AAPL", Identifier: 320193},
		{Name: "MICROSOFT CORP", Ticker: "MSFT", Identifier: 789019},
		{Name: "Alphabet Inc.", Ticker: "GOOGL", Identifier: 1652044},
		{Name: "Alphabet Inc.", Ticker: "GOOG", Identifier: 1652044},
		{Name: "NVIDIA CORP", Ticker: "NVDA", Identifier: 1045810},
		{Name: "Apple Hospitality REIT, Inc.", Ticker: "APLE", Identifier: 1418121},
		{Name: "Pineapple Energy Inc.", Ticker: "PEGY", Identifier: 22701},
	}
}

func TestResolveByName_SubstringCaseInsensitive(t *testing.T) {
	r := New(nil)
	got := r.ResolveByName("  apple ", testSnapshot())
	assert.Equal(t, []string{"AAPL", "APLE", "PEGY"}, got)
}

func TestResolveByName_MatchesExactlyTheContainingTitles(t *testing.T) {
	r := New(DefaultSynonyms())
	snap := testSnapshot()

	for _, q := range []string{"inc", "CORP", "Alphabet", "apple h", "zzz"} {
		needle := strings.ToUpper(strings.TrimSpace(r.Canonical(q)))
		var want []string
		for _, rec := range snap {
			if strings.Contains(strings.ToUpper(rec.Name), needle) {
				want = append(want, rec.Ticker)
			}
		}
		assert.Equal(t, want, r.ResolveByName(q, snap), "query %q", q)
	}
}

func TestResolveByName_Synonym(t *testing.T) {
	r := New(DefaultSynonyms())
	assert.Equal(t, []string{"GOOGL", "GOOG"}, r.ResolveByName("Google", testSnapshot()))
}

func TestResolveByName_SynonymTableIsSwappable(t *testing.T) {
	r := New(Synonyms{"Fruit": "apple inc"})
	assert.Equal(t, []string{"AAPL"}, r.ResolveByName("fruit", testSnapshot()))

	// Without the default table "google" is matched literally
	assert.Empty(t, r.ResolveByName("google", testSnapshot()))
}

func TestResolveByName_NoMatchAndEmpty(t *testing.T) {
	r := New(nil)
	assert.Empty(t, r.ResolveByName("Berkshire", testSnapshot()))
	assert.Empty(t, r.ResolveByName("   ", testSnapshot()))
	assert.Empty(t, r.ResolveByName("apple", nil))
}

func TestResolveTickerToIdentifier_ExactOnly(t *testing.T) {
	r := New(nil)
	snap := testSnapshot()

	assert.Equal(t, "CIK0000320193", r.ResolveTickerToIdentifier("aapl", snap))
	assert.Equal(t, "CIK0001652044", r.ResolveTickerToIdentifier("GOOG", snap))

	// "AAP" is a prefix of AAPL and "GOO" a prefix of GOOG: neither resolves
	assert.Equal(t, "", r.ResolveTickerToIdentifier("AAP", snap))
	assert.Equal(t, "", r.ResolveTickerToIdentifier("GOO", snap))
	assert.Equal(t, "", r.ResolveTickerToIdentifier("", snap))
}

func TestFormatIdentifier(t *testing.T) {
	assert.Equal(t, "CIK0000320193", FormatIdentifier(320193))
	assert.Equal(t, "CIK0000000001", FormatIdentifier(1))
	assert.Len(t, FormatIdentifier(1652044), 13)
}

func TestNormalizeIdentifier(t *testing.T) {
	for _, in := range []string{"320193", "0000320193", "CIK0000320193", "cik320193", " 320193 "} {
		got, err := NormalizeIdentifier(in)
		require.NoError(t, err, in)
		assert.Equal(t, "CIK0000320193", got, in)
	}

	for _, in := range []string{"", "CIK", "AAPL", "12345678901", "32-0193"} {
		_, err := NormalizeIdentifier(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, models.ErrInvalidIdentifier), in)
	}
}
